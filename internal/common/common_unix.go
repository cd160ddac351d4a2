// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd || linux

package common

import (
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// SysV ipc flags.
const (
	IpcCreate = 00001000 /* create if key is nonexistent */
	IpcExcl   = 00002000 /* fail if key exists */
	IpcNoWait = 00004000 /* return error on wait */

	IpcRmid = 0 /* remove resource */
)

// Key is a SysV ipc key.
type Key uint64

// KeyForName returns a SysV ipc key for the given object name.
// The key is generated from a per-name file in the temp directory,
// which is created, if it does not exist.
func KeyForName(name string) (Key, error) {
	filename := TmpFilename(name)
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDONLY, 0666)
	if err != nil {
		return 0, errors.Wrap(err, "invalid name for key")
	}
	file.Close()
	k, err := ftok(filename)
	if err != nil {
		return 0, errors.Wrap(err, "invalid name for key")
	}
	return k, nil
}

// TmpFilename returns a path for the name's key file.
func TmpFilename(name string) string {
	return os.TempDir() + "/" + name
}

func ftok(name string) (Key, error) {
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		return Key(0), err
	}
	return Key(uint64(st.Ino)&0xFFFF | ((uint64(st.Dev) & 0xFF) << 16)), nil
}

// TimeoutToTimeSpec converts a relative timeout into a unix timespec.
// Negative timeouts produce a nil timespec, meaning an infinite wait.
func TimeoutToTimeSpec(timeout time.Duration) *unix.Timespec {
	if timeout >= 0 {
		ts := unix.NsecToTimespec(timeout.Nanoseconds())
		return &ts
	}
	return nil
}

// IsInterruptedSyscallErr returns true, if the given error is EINTR.
func IsInterruptedSyscallErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EINTR)
}

// IsTimeoutErr returns true, if the given error is a syscall timeout.
func IsTimeoutErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EAGAIN) || SyscallErrHasCode(err, syscall.ETIMEDOUT)
}

// SyscallErrHasCode returns true, if the given error is a syscall error with the given code.
func SyscallErrHasCode(err error, code syscall.Errno) bool {
	switch sysErr := errors.Cause(err).(type) {
	case *os.SyscallError:
		if errno, ok := sysErr.Err.(syscall.Errno); ok {
			return errno == code
		}
	case *os.PathError:
		if errno, ok := sysErr.Err.(syscall.Errno); ok {
			return errno == code
		}
	case syscall.Errno:
		return sysErr == code
	}
	return false
}
