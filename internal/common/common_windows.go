// Copyright 2025 The procsync authors. All rights reserved.

package common

import (
	"os"
	"syscall"
)

const (
	cERROR_TIMEOUT = syscall.Errno(1460)
)

// IsInterruptedSyscallErr always returns false on windows,
// where waits are not interrupted by signals.
func IsInterruptedSyscallErr(err error) bool {
	return false
}

// IsTimeoutErr returns true, if the given error is a wait timeout.
func IsTimeoutErr(err error) bool {
	return SyscallErrHasCode(err, cERROR_TIMEOUT)
}

// NewTimeoutError returns a new syscall error with ERROR_TIMEOUT code.
func NewTimeoutError(op string) error {
	return os.NewSyscallError(op, cERROR_TIMEOUT)
}

// SyscallErrHasCode returns true, if the given error is a syscall error with the given code.
func SyscallErrHasCode(err error, code syscall.Errno) bool {
	if sysErr, ok := err.(*os.SyscallError); ok {
		if errno, ok := sysErr.Err.(syscall.Errno); ok {
			return errno == code
		}
	}
	return false
}
