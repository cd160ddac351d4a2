// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"time"

	"github.com/pkg/errors"
)

// NamedMutex is a binary semaphore, visible to all processes on the machine
// under its name. It is non-recursive and keeps no ownership record: unlocking
// a mutex, which is not locked, is undefined behavior, exactly as with a raw
// OS semaphore.
//
// A NamedMutex is safe for concurrent use.
type NamedMutex struct {
	name string
	impl *mutexImpl
}

// OpenMutex returns the process-wide NamedMutex instance for the given name,
// creating the underlying OS object, if it does not exist yet.
func OpenMutex(name string) (*NamedMutex, error) {
	if err := checkObjectName(name, maxNameLength); err != nil {
		return nil, err
	}
	obj, err := globalRegistry.get(kindMutex, name, func() (interface{}, error) {
		impl, err := newMutexImpl(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open named mutex %q", name)
		}
		return &NamedMutex{name: name, impl: impl}, nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(*NamedMutex), nil
}

// Name returns the mutex name.
func (m *NamedMutex) Name() string {
	return m.name
}

// Lock acquires the mutex, blocking the calling thread until it is available.
// It panics on an unexpected OS error.
func (m *NamedMutex) Lock() {
	if err := m.impl.lock(); err != nil {
		panic(err)
	}
}

// TryLock makes one attempt to acquire the mutex and returns immediately.
func (m *NamedMutex) TryLock() bool {
	ok, err := m.impl.tryLock()
	if err != nil {
		panic(err)
	}
	return ok
}

// LockTimeout tries to acquire the mutex, waiting for not more, than timeout.
// It returns false on expiry and panics only on an unexpected OS error.
// A non-positive timeout is a single TryLock attempt.
func (m *NamedMutex) LockTimeout(timeout time.Duration) bool {
	if timeout <= 0 {
		return m.TryLock()
	}
	ok, err := m.impl.lockTimeout(timeout)
	if err != nil {
		panic(err)
	}
	return ok
}

// LockDeadline tries to acquire the mutex until the given point in time.
func (m *NamedMutex) LockDeadline(deadline time.Time) bool {
	return m.LockTimeout(time.Until(deadline))
}

// Unlock releases the mutex. It panics on an OS error.
func (m *NamedMutex) Unlock() {
	if err := m.impl.unlock(); err != nil {
		panic(err)
	}
}

// UnlinkMutex removes the mutex name from the OS namespace. Processes, which
// already opened the mutex, keep functioning until they exit. Unlinking a
// non-existent name is a silent no-op, so the call is idempotent.
func UnlinkMutex(name string) error {
	if err := checkObjectName(name, maxNameLength); err != nil {
		return err
	}
	return unlinkMutexName(name)
}
