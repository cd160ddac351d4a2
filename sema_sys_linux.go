// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/procsync/procsync/internal/allocator"
)

func semtimedop(id int, ops []sembuf, timeout *unix.Timespec) error {
	if len(ops) == 0 {
		return nil
	}
	pOps := unsafe.Pointer(&ops[0])
	pTimeout := unsafe.Pointer(timeout)
	defer allocator.Use(pOps)
	defer allocator.Use(pTimeout)
	_, _, err := unix.Syscall6(unix.SYS_SEMTIMEDOP,
		uintptr(id),
		uintptr(pOps),
		uintptr(len(ops)),
		uintptr(pTimeout),
		0,
		0)
	if err != syscallErrNone {
		return os.NewSyscallError("SEMTIMEDOP", err)
	}
	return nil
}

// semTimedAdd is semAdd with a timeout. A nil timeout blocks indefinitely.
func semTimedAdd(id int, value int16, timeout *unix.Timespec) error {
	return semtimedop(id, []sembuf{{semnum: 0, semop: value}}, timeout)
}
