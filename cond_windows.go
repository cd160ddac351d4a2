// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"os"
	"time"

	"golang.org/x/sys/windows"

	"github.com/procsync/procsync/internal/common"
)

// notifyAllHold is how long NotifyAll keeps the event signaled, so every
// waiter of the current generation gets a chance to run through the wait.
const notifyAllHold = time.Millisecond

// condImpl is a named manual-reset event. A kernel auto-reset event would
// give NotifyOne exact single-wakeup semantics, but it cannot serve the
// NotifyAll pulse, so one manual-reset event backs both: the woken waiter
// resets the event itself, and between its wake and its reset further
// waiters may slip through. NotifyOne is therefore at-least-one, not
// exactly-one, on this platform. NotifyAll pulses the event for a short
// interval and is weaker too: a waiter, which is not blocked during the
// pulse, misses the notification.
type condImpl struct {
	name   string
	handle windows.Handle
}

func newCondImpl(name string) (*condImpl, error) {
	namep, err := windows.UTF16PtrFromString(globalPrefix + name)
	if err != nil {
		return nil, err
	}
	handle, err := windows.CreateEvent(nil, 1, 0, namep)
	if handle == windows.Handle(0) {
		return nil, os.NewSyscallError("CreateEvent", err)
	}
	// ERROR_ALREADY_EXISTS with a valid handle means we opened
	// an existing event, which is the expected path for late joiners.
	return &condImpl{name: name, handle: handle}, nil
}

func (c *condImpl) waitSignal() error {
	if err := c.wait(windows.INFINITE); err != nil {
		return err
	}
	return windows.ResetEvent(c.handle)
}

func (c *condImpl) waitTimeout(timeout time.Duration) (bool, error) {
	if timeout < 0 {
		timeout = 0
	}
	err := c.wait(timeoutToMillis(timeout))
	if err == nil {
		return true, windows.ResetEvent(c.handle)
	}
	if common.IsTimeoutErr(err) {
		return false, nil
	}
	return false, err
}

func (c *condImpl) notifyOne() error {
	return windows.SetEvent(c.handle)
}

func (c *condImpl) notifyAll(int) error {
	if err := windows.SetEvent(c.handle); err != nil {
		return err
	}
	time.Sleep(notifyAllHold)
	return windows.ResetEvent(c.handle)
}

func (c *condImpl) wait(millis uint32) error {
	ev, err := windows.WaitForSingleObject(c.handle, millis)
	if err != nil {
		return os.NewSyscallError("WaitForSingleObject", err)
	}
	if ev == uint32(windows.WAIT_TIMEOUT) {
		return common.NewTimeoutError("WaitForSingleObject")
	}
	return nil
}

// unlinkConditionName is a no-op on windows: the event is destroyed
// automatically when the last handle is closed.
func unlinkConditionName(string) error {
	return nil
}
