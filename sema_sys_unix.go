// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd || linux

package procsync

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/procsync/procsync/internal/allocator"
	"github.com/procsync/procsync/internal/common"
)

type sembuf struct {
	semnum uint16
	semop  int16
	semflg int16
}

func semget(k common.Key, nsems, semflg int) (int, error) {
	id, _, err := unix.Syscall(unix.SYS_SEMGET, uintptr(k), uintptr(nsems), uintptr(semflg))
	if err != syscallErrNone {
		if err == unix.EEXIST || err == unix.ENOENT {
			return -1, &os.PathError{Op: "SEMGET", Path: "", Err: err}
		}
		return -1, os.NewSyscallError("SEMGET", err)
	}
	return int(id), nil
}

func semop(id int, ops []sembuf) error {
	if len(ops) == 0 {
		return nil
	}
	pOps := unsafe.Pointer(&ops[0])
	defer allocator.Use(pOps)
	_, _, err := unix.Syscall(unix.SYS_SEMOP, uintptr(id), uintptr(pOps), uintptr(len(ops)))
	if err != syscallErrNone {
		return os.NewSyscallError("SEMOP", err)
	}
	return nil
}

func semctl(id, num, cmd int) error {
	_, _, err := unix.Syscall(unix.SYS_SEMCTL, uintptr(id), uintptr(num), uintptr(cmd))
	if err != syscallErrNone {
		return os.NewSyscallError("SEMCTL", err)
	}
	return nil
}

// semAdd performs a single add operation on the first semaphore in the set.
func semAdd(id int, value int16, flags int16) error {
	return semop(id, []sembuf{{semnum: 0, semop: value, semflg: flags}})
}

const syscallErrNone = unix.Errno(0)
