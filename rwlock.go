// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"time"

	"github.com/pkg/errors"

	"github.com/procsync/procsync/internal/common"
)

// Suffixes of the primitives composing a SharedRWLock.
const (
	excSuffix  = ".exc"
	condSuffix = ".cond"
	cntSuffix  = ".cnt"
	priSuffix  = ".pri"
)

// condRecheckInterval bounds a writer's sleep between reader-count checks.
// A notification can land between the count check and the wait and be lost,
// so the wait must not be unbounded.
const condRecheckInterval = 100 * time.Millisecond

// SharedRWLock is a readers-writer lock composed of four named primitives:
// an entry mutex (.exc), a readers-gone condition (.cond), a reader counter
// (.cnt) and a priority mutex (.pri), serializing writers against privileged
// upgraders.
//
// A handle represents one execution context. It carries local ownership
// flags, which make repeated lock and unlock calls idempotent, so a handle
// must not be shared between goroutines. Open one handle per goroutine;
// they all address the same machine-wide lock.
type SharedRWLock struct {
	name       string
	privileged bool

	exc  *NamedMutex
	cond *NamedCondition
	cnt  *NamedCounter
	pri  *NamedMutex

	hasShared    bool
	hasExclusive bool
	hasPrior     bool
}

// NewSharedRWLock returns a new handle for the named lock, creating the
// underlying objects, if they do not exist yet.
func NewSharedRWLock(name string) (*SharedRWLock, error) {
	return newSharedRWLock(name, false)
}

// NewPrivilegedSharedRWLock returns a handle, which is additionally allowed
// to call Upgrade. At most one privileged handle may attempt an upgrade at
// a time across the whole machine: a second concurrent upgrader is a fatal
// protocol violation.
func NewPrivilegedSharedRWLock(name string) (*SharedRWLock, error) {
	return newSharedRWLock(name, true)
}

func newSharedRWLock(name string, privileged bool) (*SharedRWLock, error) {
	if err := checkObjectName(name, maxNameLength-suffixReserve); err != nil {
		return nil, err
	}
	exc, err := OpenMutex(name + excSuffix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open entry mutex")
	}
	cond, err := OpenCondition(name + condSuffix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open readers condition")
	}
	cnt, err := OpenCounter(name + cntSuffix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open reader counter")
	}
	pri, err := OpenMutex(name + priSuffix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open priority mutex")
	}
	return &SharedRWLock{
		name:       name,
		privileged: privileged,
		exc:        exc,
		cond:       cond,
		cnt:        cnt,
		pri:        pri,
	}, nil
}

// Name returns the lock base name.
func (l *SharedRWLock) Name() string {
	return l.name
}

func (l *SharedRWLock) isWriter() bool {
	return l.hasExclusive || l.hasPrior
}

// RLock acquires the lock in shared mode. A handle, which already holds
// the lock in any mode, returns immediately.
func (l *SharedRWLock) RLock() {
	if l.hasShared || l.isWriter() {
		return
	}
	l.exc.Lock()
	l.cnt.FetchAdd(1)
	l.exc.Unlock()
	l.hasShared = true
}

// TryRLock makes one attempt to acquire the lock in shared mode.
func (l *SharedRWLock) TryRLock() bool {
	if l.hasShared || l.isWriter() {
		return true
	}
	if !l.exc.TryLock() {
		return false
	}
	l.cnt.FetchAdd(1)
	l.exc.Unlock()
	l.hasShared = true
	return true
}

// RLockTimeout tries to acquire the lock in shared mode,
// waiting for not more, than timeout.
func (l *SharedRWLock) RLockTimeout(timeout time.Duration) bool {
	return l.RLockDeadline(time.Now().Add(timeout))
}

// RLockDeadline tries to acquire the lock in shared mode
// until the given point in time.
func (l *SharedRWLock) RLockDeadline(deadline time.Time) bool {
	if l.hasShared || l.isWriter() {
		return true
	}
	if !l.exc.LockDeadline(deadline) {
		return false
	}
	l.cnt.FetchAdd(1)
	l.exc.Unlock()
	l.hasShared = true
	return true
}

// RUnlock releases the shared lock. The last leaving reader notifies
// a writer, which may be waiting for the count to drain.
func (l *SharedRWLock) RUnlock() {
	if !l.hasShared {
		return
	}
	if l.cnt.FetchSub(1) == 1 {
		l.cond.NotifyOne()
	}
	l.hasShared = false
}

// Lock acquires the lock in exclusive mode: it takes the entry mutex, waits
// out the readers, then takes the priority mutex. A handle, which already
// holds the lock exclusively, returns immediately. A handle, which holds
// the shared lock, must use Upgrade instead: calling Lock would deadlock
// on its own reader slot.
func (l *SharedRWLock) Lock() {
	if l.isWriter() {
		return
	}
	l.exc.Lock()
	for l.cnt.Load() > 0 {
		l.cond.WaitTimeout(condRecheckInterval)
	}
	l.pri.Lock()
	l.hasExclusive = true
	l.hasPrior = true
}

// TryLock makes one attempt to acquire the lock in exclusive mode,
// failing fast, if readers are present or either mutex is busy.
func (l *SharedRWLock) TryLock() bool {
	if l.isWriter() {
		return true
	}
	if !l.exc.TryLock() {
		return false
	}
	if l.cnt.Load() > 0 {
		l.exc.Unlock()
		return false
	}
	if !l.pri.TryLock() {
		l.exc.Unlock()
		return false
	}
	l.hasExclusive = true
	l.hasPrior = true
	return true
}

// LockTimeout tries to acquire the lock in exclusive mode,
// waiting for not more, than timeout.
func (l *SharedRWLock) LockTimeout(timeout time.Duration) bool {
	return l.LockDeadline(time.Now().Add(timeout))
}

// LockDeadline tries to acquire the lock in exclusive mode until the given
// point in time, unwinding the entry mutex on expiry.
func (l *SharedRWLock) LockDeadline(deadline time.Time) bool {
	if l.isWriter() {
		return true
	}
	if !l.exc.LockDeadline(deadline) {
		return false
	}
	for l.cnt.Load() > 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			l.exc.Unlock()
			return false
		}
		if remaining > condRecheckInterval {
			remaining = condRecheckInterval
		}
		l.cond.WaitTimeout(remaining)
	}
	if !l.pri.LockDeadline(deadline) {
		l.exc.Unlock()
		return false
	}
	l.hasExclusive = true
	l.hasPrior = true
	return true
}

// Unlock releases the exclusive lock. A handle, which became exclusive by
// preempting a writer during Upgrade, owns only the priority mutex.
func (l *SharedRWLock) Unlock() {
	if l.hasPrior {
		l.pri.Unlock()
		l.hasPrior = false
	}
	if l.hasExclusive {
		l.exc.Unlock()
		l.hasExclusive = false
	}
}

// Upgrade atomically turns a held shared lock into an exclusive one without
// releasing it in between: no writer can slip in during the transition.
// If a queued writer already holds the entry mutex, the upgrader preempts it
// by seizing the priority mutex, which the writer takes last.
//
// Only a privileged handle may upgrade, and only while holding the shared
// lock. Two concurrent upgraders cannot both be preserved: detecting the
// second one is a fatal protocol violation, which unlinks the lock and
// terminates the process.
func (l *SharedRWLock) Upgrade() error {
	if l.isWriter() {
		return nil
	}
	if !l.privileged {
		return errors.Errorf("lock %q: upgrade requires a privileged handle", l.name)
	}
	if !l.hasShared {
		return errors.Errorf("lock %q: upgrade requires a held shared lock", l.name)
	}
	gotExc := l.exc.TryLock()
	if !gotExc && !l.pri.TryLock() {
		// log first, unlink second: the diagnostic must land even
		// if the cleanup does not
		logger.Error("concurrent upgrade detected, lock state is unrecoverable", "lock", l.name)
		_ = UnlinkSharedRWLock(l.name)
		abortProcess()
		return errors.Errorf("lock %q: concurrent upgrade detected", l.name)
	}
	// Readers cannot enter anymore: either the entry mutex is ours, or it is
	// held by the preempted writer. Wait for the other readers to leave.
	b := common.NewBackoff()
	for l.cnt.Load() > 1 {
		b.Sleep()
	}
	l.cnt.FetchSub(1)
	l.cond.NotifyOne()
	l.hasShared = false
	l.hasExclusive = gotExc
	l.hasPrior = !gotExc
	return nil
}

// UnlinkSharedRWLock removes all four composed objects from the OS
// namespace. Unlinking a non-existent lock is a silent no-op.
func UnlinkSharedRWLock(name string) error {
	if err := checkObjectName(name, maxNameLength-suffixReserve); err != nil {
		return err
	}
	if err := UnlinkMutex(name + excSuffix); err != nil {
		return err
	}
	if err := UnlinkCondition(name + condSuffix); err != nil {
		return err
	}
	if err := UnlinkCounter(name + cntSuffix); err != nil {
		return err
	}
	return UnlinkMutex(name + priSuffix)
}
