// Copyright 2025 The procsync authors. All rights reserved.

// Package allocator contains helpers for treating mapped shared memory
// as typed objects.
package allocator

import (
	"unsafe"
)

// ByteSliceData returns a pointer to the data of the given byte slice.
func ByteSliceData(slice []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(slice))
}

// Use ensures, that the object is alive at some point,
// so that a pointer passed to a syscall is not collected early.
//
//go:noinline
func Use(unsafe.Pointer) {}
