// Copyright 2025 The procsync authors. All rights reserved.

// Package sys wraps the kernel32 calls, which are missing from
// golang.org/x/sys/windows or have unsuitable error reporting there.
package sys

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/procsync/procsync/internal/allocator"
)

var (
	modkernel32           = windows.NewLazySystemDLL("kernel32.dll")
	procCreateFileMapping = modkernel32.NewProc("CreateFileMappingW")
	procCreateSemaphore   = modkernel32.NewProc("CreateSemaphoreW")
	procOpenSemaphore     = modkernel32.NewProc("OpenSemaphoreW")
	procReleaseSemaphore  = modkernel32.NewProc("ReleaseSemaphore")
)

const (
	cSEMAPHORE_MODIFY_STATE = 0x0002
)

// CreateFileMapping is a wrapper for the CreateFileMappingW syscall.
// We cannot use the call from golang.org/x/sys/windows, because it returns a nil
// error for a valid handle, while CreateFileMapping may return a valid handle
// along with ERROR_ALREADY_EXISTS, and we need to know, if the object existed.
func CreateFileMapping(fhandle windows.Handle, sa *windows.SecurityAttributes, prot uint32, maxSizeHigh, maxSizeLow uint32, name string) (windows.Handle, bool, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, false, err
	}
	nameu := unsafe.Pointer(namep)
	sau := unsafe.Pointer(sa)
	r1, _, errno := procCreateFileMapping.Call(
		uintptr(fhandle),
		uintptr(sau),
		uintptr(prot),
		uintptr(maxSizeHigh),
		uintptr(maxSizeLow),
		uintptr(nameu))
	allocator.Use(sau)
	allocator.Use(nameu)
	if r1 == 0 {
		return 0, false, os.NewSyscallError("CreateFileMapping", errno)
	}
	return windows.Handle(r1), errno == windows.ERROR_ALREADY_EXISTS, nil
}

// CreateSemaphore is a wrapper for the CreateSemaphoreW syscall.
func CreateSemaphore(name string, initial, maximum int, sa *windows.SecurityAttributes) (windows.Handle, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	nameu := unsafe.Pointer(namep)
	sau := unsafe.Pointer(sa)
	r1, _, errno := procCreateSemaphore.Call(
		uintptr(sau),
		uintptr(initial),
		uintptr(maximum),
		uintptr(nameu))
	allocator.Use(sau)
	allocator.Use(nameu)
	if r1 == 0 {
		if errno == windows.ERROR_ALREADY_EXISTS {
			return 0, &os.PathError{Op: "CreateSemaphore", Path: name, Err: errno}
		}
		return 0, os.NewSyscallError("CreateSemaphore", errno)
	}
	return windows.Handle(r1), nil
}

// OpenSemaphore is a wrapper for the OpenSemaphoreW syscall.
func OpenSemaphore(name string, inheritHandle uint32) (windows.Handle, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	nameu := unsafe.Pointer(namep)
	access := uintptr(windows.SYNCHRONIZE | cSEMAPHORE_MODIFY_STATE)
	r1, _, errno := procOpenSemaphore.Call(access, uintptr(inheritHandle), uintptr(nameu))
	allocator.Use(nameu)
	if r1 == 0 {
		if errno == windows.ERROR_FILE_NOT_FOUND {
			return 0, &os.PathError{Op: "OpenSemaphore", Path: name, Err: errno}
		}
		return 0, os.NewSyscallError("OpenSemaphore", errno)
	}
	return windows.Handle(r1), nil
}

// ReleaseSemaphore is a wrapper for the ReleaseSemaphore syscall.
func ReleaseSemaphore(h windows.Handle, count int) (int, error) {
	var prev int32
	r1, _, errno := procReleaseSemaphore.Call(
		uintptr(h),
		uintptr(count),
		uintptr(unsafe.Pointer(&prev)))
	if r1 == 0 {
		return 0, os.NewSyscallError("ReleaseSemaphore", errno)
	}
	return int(prev), nil
}
