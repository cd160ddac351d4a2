// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/procsync/procsync/internal/common"
)

// condImpl is a futex over the shared generation counter. A waiter snapshots
// the generation and sleeps until it changes. A notification, which lands
// between the snapshot and the sleep, makes FUTEX_WAIT fail with EAGAIN,
// which counts as a wakeup.
type condImpl struct {
	*condShared
	name string
}

func newCondImpl(name string) (*condImpl, error) {
	shared, err := openCondShared(name)
	if err != nil {
		return nil, err
	}
	return &condImpl{condShared: shared, name: name}, nil
}

func (c *condImpl) waitSignal() error {
	seq := atomic.LoadUint32(&c.rec.seq)
	err := futexWait(&c.rec.seq, seq, nil)
	if err == nil {
		return nil
	}
	if common.SyscallErrHasCode(err, unix.EAGAIN) || common.IsInterruptedSyscallErr(err) {
		return nil
	}
	return err
}

func (c *condImpl) waitTimeout(timeout time.Duration) (bool, error) {
	if timeout < 0 {
		timeout = 0
	}
	seq := atomic.LoadUint32(&c.rec.seq)
	err := futexWait(&c.rec.seq, seq, common.TimeoutToTimeSpec(timeout))
	if err == nil {
		return true, nil
	}
	if common.SyscallErrHasCode(err, unix.ETIMEDOUT) {
		return false, nil
	}
	if common.SyscallErrHasCode(err, unix.EAGAIN) || common.IsInterruptedSyscallErr(err) {
		return true, nil
	}
	return false, err
}

func (c *condImpl) notifyOne() error {
	atomic.AddUint32(&c.rec.seq, 1)
	_, err := futexWake(&c.rec.seq, 1)
	return err
}

func (c *condImpl) notifyAll(count int) error {
	atomic.AddUint32(&c.rec.seq, 1)
	_, err := futexWake(&c.rec.seq, count)
	return err
}

func unlinkConditionName(name string) error {
	return destroyCondShared(name)
}
