// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/procsync/procsync/internal/common"
	sys "github.com/procsync/procsync/internal/sys/windows"
)

// globalPrefix places kernel objects into the session-independent namespace,
// so they are visible to processes of all users. Creating objects there
// requires elevated privileges.
const globalPrefix = `Global\`

// mutexImpl is a named kernel semaphore with maximum count 1.
type mutexImpl struct {
	name   string
	handle windows.Handle
}

func newMutexImpl(name string) (*mutexImpl, error) {
	var handle windows.Handle
	sysName := globalPrefix + name
	creator := func(create bool) error {
		var sysErr error
		if create {
			handle, sysErr = sys.CreateSemaphore(sysName, 1, 1, nil)
		} else {
			handle, sysErr = sys.OpenSemaphore(sysName, 0)
		}
		return sysErr
	}
	if _, err := common.OpenOrCreate(creator); err != nil {
		return nil, errors.Wrap(err, "failed to create kernel semaphore")
	}
	return &mutexImpl{name: name, handle: handle}, nil
}

func (m *mutexImpl) lock() error {
	return m.wait(windows.INFINITE)
}

func (m *mutexImpl) tryLock() (bool, error) {
	err := m.wait(0)
	if err == nil {
		return true, nil
	}
	if common.IsTimeoutErr(err) {
		return false, nil
	}
	return false, err
}

func (m *mutexImpl) lockTimeout(timeout time.Duration) (bool, error) {
	err := m.wait(timeoutToMillis(timeout))
	if err == nil {
		return true, nil
	}
	if common.IsTimeoutErr(err) {
		return false, nil
	}
	return false, err
}

func (m *mutexImpl) unlock() error {
	_, err := sys.ReleaseSemaphore(m.handle, 1)
	return err
}

func (m *mutexImpl) wait(millis uint32) error {
	ev, err := windows.WaitForSingleObject(m.handle, millis)
	if err != nil {
		return errors.Wrap(err, "wait for semaphore failed")
	}
	if ev == uint32(windows.WAIT_TIMEOUT) {
		return common.NewTimeoutError("WaitForSingleObject")
	}
	return nil
}

// timeoutToMillis converts a duration to a WaitForSingleObject argument,
// clamping it below INFINITE so a huge finite timeout stays finite.
func timeoutToMillis(timeout time.Duration) uint32 {
	millis := timeout.Milliseconds()
	if millis >= int64(windows.INFINITE) {
		millis = int64(windows.INFINITE) - 1
	}
	return uint32(millis)
}

// unlinkMutexName is a no-op on windows: named kernel objects are destroyed
// automatically when the last handle is closed.
func unlinkMutexName(string) error {
	return nil
}
