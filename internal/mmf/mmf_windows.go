// Copyright 2025 The procsync authors. All rights reserved.

package mmf

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

type region struct {
	addr uintptr
	size int
}

func newRegion(obj Mappable, size int) (*region, error) {
	addr, err := windows.MapViewOfFile(
		windows.Handle(obj.Fd()),
		windows.FILE_MAP_READ|windows.FILE_MAP_WRITE,
		0, 0, uintptr(size))
	if err != nil {
		return nil, errors.Wrap(err, "MapViewOfFile failed")
	}
	return &region{addr: addr, size: size}, nil
}

func (r *region) data() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(r.addr)), r.size)
}

func (r *region) close() error {
	if r.addr == 0 {
		return nil
	}
	err := windows.UnmapViewOfFile(r.addr)
	r.addr = 0
	return errors.Wrap(err, "UnmapViewOfFile failed")
}
