// Copyright 2025 The procsync authors. All rights reserved.

// Package common contains low-level helpers shared by the procsync primitives.
package common

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// OpenOrCreate calls the given creator func in create mode first, and falls
// back to open mode, if the object already exists. It retries several times to
// survive the race, when another process removes the object between the two
// attempts. Returns true, if the object was created by this call.
func OpenOrCreate(creator func(create bool) error) (bool, error) {
	const attempts = 16
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = creator(true); !os.IsExist(errors.Cause(err)) {
			return err == nil, err
		}
		if err = creator(false); !os.IsNotExist(errors.Cause(err)) {
			return false, err
		}
	}
	return false, err
}

// UninterruptedSyscall runs a syscall func, retrying it on EINTR.
func UninterruptedSyscall(f func() error) error {
	for {
		err := f()
		if !IsInterruptedSyscallErr(err) {
			return err
		}
	}
}

// UninterruptedSyscallTimeout runs a timed syscall func, retrying it on EINTR
// with the timeout recalculated from the original deadline.
func UninterruptedSyscallTimeout(f func(time.Duration) error, timeout time.Duration) error {
	var deadline time.Time
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		err := f(timeout)
		if !IsInterruptedSyscallErr(err) {
			return err
		}
		if timeout >= 0 {
			if timeout = time.Until(deadline); timeout < 0 {
				timeout = 0
			}
		}
	}
}

const (
	backoffInitial = 100 * time.Microsecond
	backoffMax     = 5 * time.Millisecond
)

// Backoff is an exponential sleep-based backoff used to emulate timed waits
// on platforms without a native timed primitive. It starts at 100µs, doubles
// on each Sleep, and is capped at 5ms.
type Backoff struct {
	cur time.Duration
}

// NewBackoff returns a backoff in its initial state.
func NewBackoff() *Backoff {
	return &Backoff{cur: backoffInitial}
}

// Sleep suspends the caller for the current backoff interval.
func (b *Backoff) Sleep() {
	time.Sleep(b.cur)
	if b.cur *= 2; b.cur > backoffMax {
		b.cur = backoffMax
	}
}
