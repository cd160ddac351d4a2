// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/procsync/procsync/internal/allocator"
)

const (
	cFutexWait = 0
	cFutexWake = 1
)

// futexWait blocks, while *addr == value. A nil timeout waits indefinitely.
// EAGAIN means the value had already changed, ETIMEDOUT means expiry.
func futexWait(addr *uint32, value uint32, timeout *unix.Timespec) error {
	pAddr, pTimeout := unsafe.Pointer(addr), unsafe.Pointer(timeout)
	defer allocator.Use(pAddr)
	defer allocator.Use(pTimeout)
	_, _, err := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(pAddr),
		cFutexWait,
		uintptr(value),
		uintptr(pTimeout),
		0,
		0)
	if err != syscallErrNone {
		return os.NewSyscallError("FUTEX_WAIT", err)
	}
	return nil
}

// futexWake wakes up to count threads, waiting on addr,
// returning the number actually woken.
func futexWake(addr *uint32, count int) (int, error) {
	pAddr := unsafe.Pointer(addr)
	defer allocator.Use(pAddr)
	woken, _, err := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(pAddr),
		cFutexWake,
		uintptr(count),
		0,
		0,
		0)
	if err != syscallErrNone {
		return 0, os.NewSyscallError("FUTEX_WAKE", err)
	}
	return int(woken), nil
}
