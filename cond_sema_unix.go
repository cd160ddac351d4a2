// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd

package procsync

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/procsync/procsync/internal/common"
)

// condWaitSuffix names the SysV semaphore serving as the wait queue.
const condWaitSuffix = ".wq"

// condImpl pairs the shared waiter counter with a SysV semaphore wait queue.
// A waiter registers itself in the counter and sleeps on the semaphore;
// a notifier consumes registrations and posts matching tokens. The timed
// wait is emulated by polling, since these systems have no semtimedop.
type condImpl struct {
	*condShared
	name   string
	waitID int
}

func newCondImpl(name string) (*condImpl, error) {
	shared, err := openCondShared(name)
	if err != nil {
		return nil, err
	}
	k, err := common.KeyForName(name + condWaitSuffix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain wait queue key")
	}
	var id int
	creator := func(create bool) error {
		flags := mutexPerm
		if create {
			flags |= common.IpcCreate | common.IpcExcl
		}
		var semErr error
		id, semErr = semget(k, 1, flags)
		return semErr
	}
	// A fresh semaphore starts at zero, which is exactly
	// what an empty wait queue needs.
	if _, err = common.OpenOrCreate(creator); err != nil {
		return nil, errors.Wrap(err, "failed to create wait queue semaphore")
	}
	return &condImpl{condShared: shared, name: name, waitID: id}, nil
}

func (c *condImpl) waitSignal() error {
	atomic.AddInt32(&c.rec.waiters, 1)
	err := common.UninterruptedSyscall(func() error {
		return semAdd(c.waitID, -1, 0)
	})
	if err != nil {
		atomic.AddInt32(&c.rec.waiters, -1)
		return err
	}
	return nil
}

func (c *condImpl) waitTimeout(timeout time.Duration) (bool, error) {
	atomic.AddInt32(&c.rec.waiters, 1)
	deadline := time.Now().Add(timeout)
	b := common.NewBackoff()
	for {
		err := semAdd(c.waitID, -1, int16(common.IpcNoWait))
		if err == nil {
			return true, nil
		}
		if !common.IsTimeoutErr(err) {
			atomic.AddInt32(&c.rec.waiters, -1)
			return false, err
		}
		if !time.Now().Before(deadline) {
			break
		}
		b.Sleep()
	}
	// Expired. Withdraw the registration, unless a notifier already
	// consumed it, in which case a token is pending and must be taken.
	for {
		w := atomic.LoadInt32(&c.rec.waiters)
		if w == 0 {
			err := common.UninterruptedSyscall(func() error {
				return semAdd(c.waitID, -1, 0)
			})
			return err == nil, err
		}
		if atomic.CompareAndSwapInt32(&c.rec.waiters, w, w-1) {
			return false, nil
		}
	}
}

func (c *condImpl) notifyOne() error {
	for {
		w := atomic.LoadInt32(&c.rec.waiters)
		if w == 0 {
			return nil
		}
		if atomic.CompareAndSwapInt32(&c.rec.waiters, w, w-1) {
			return semAdd(c.waitID, 1, 0)
		}
	}
}

func (c *condImpl) notifyAll(count int) error {
	for i := 0; i < count; i++ {
		w := atomic.LoadInt32(&c.rec.waiters)
		if w == 0 {
			return nil
		}
		if err := c.notifyOne(); err != nil {
			return err
		}
	}
	return nil
}

func unlinkConditionName(name string) error {
	if err := destroyCondShared(name); err != nil {
		return err
	}
	return unlinkMutexName(name + condWaitSuffix)
}
