// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"time"

	"github.com/pkg/errors"
)

// defaultNotifyAllCount bounds a single NotifyAll call, when the caller
// does not name its own limit.
const defaultNotifyAllCount = 32

// NamedCondition is a process-shared condition variable. Unlike sync.Cond
// it is not bound to a particular locker: callers keep their own predicate
// under their own mutex and re-check it after every wake. Spurious wakeups
// are possible and must be tolerated.
type NamedCondition struct {
	name string
	impl *condImpl
}

// OpenCondition returns the process-wide NamedCondition instance for the
// given name, creating the underlying OS objects, if they do not exist yet.
func OpenCondition(name string) (*NamedCondition, error) {
	if err := checkObjectName(name, maxNameLength); err != nil {
		return nil, err
	}
	obj, err := globalRegistry.get(kindCondition, name, func() (interface{}, error) {
		impl, err := newCondImpl(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open named condition %q", name)
		}
		return &NamedCondition{name: name, impl: impl}, nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(*NamedCondition), nil
}

// Name returns the condition name.
func (c *NamedCondition) Name() string {
	return c.name
}

// WaitSignal blocks the calling thread until the condition is notified.
// It panics on an unexpected OS error.
func (c *NamedCondition) WaitSignal() {
	if err := c.impl.waitSignal(); err != nil {
		panic(err)
	}
}

// WaitTimeout blocks until the condition is notified or the timeout expires.
// It returns false on expiry. A non-positive timeout returns false
// immediately, unless a notification is already pending.
func (c *NamedCondition) WaitTimeout(timeout time.Duration) bool {
	ok, err := c.impl.waitTimeout(timeout)
	if err != nil {
		panic(err)
	}
	return ok
}

// WaitDeadline blocks until the condition is notified or the given point
// in time passes.
func (c *NamedCondition) WaitDeadline(deadline time.Time) bool {
	return c.WaitTimeout(time.Until(deadline))
}

// NotifyOne wakes one waiter, if any. A notification with no waiters
// is lost, exactly as with pthread condition variables.
func (c *NamedCondition) NotifyOne() {
	if err := c.impl.notifyOne(); err != nil {
		panic(err)
	}
}

// NotifyAll wakes up to count waiters. A non-positive count uses
// the default limit of 32.
func (c *NamedCondition) NotifyAll(count int) {
	if count <= 0 {
		count = defaultNotifyAllCount
	}
	if err := c.impl.notifyAll(count); err != nil {
		panic(err)
	}
}

// UnlinkCondition removes the condition name from the OS namespace.
// Unlinking a non-existent name is a silent no-op.
func UnlinkCondition(name string) error {
	if err := checkObjectName(name, maxNameLength); err != nil {
		return err
	}
	return unlinkConditionName(name)
}
