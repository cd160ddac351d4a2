// Copyright 2025 The procsync authors. All rights reserved.

package shm

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	sys "github.com/procsync/procsync/internal/sys/windows"
)

// Shared memory on windows is backed by the system paging file and named
// under the Global\ namespace, so that unrelated processes in any session
// can open it. Access to Global\ objects requires administrative rights.
type memoryObject struct {
	handle windows.Handle
	size   int64
}

func openMemoryObject(name string, size int64) (*memoryObject, error) {
	if len(name) == 0 || strings.ContainsRune(name, '\\') {
		return nil, errors.New("invalid shm name")
	}
	handle, _, err := sys.CreateFileMapping(
		windows.InvalidHandle,
		nil,
		windows.PAGE_READWRITE,
		uint32(size>>32),
		uint32(size&0xFFFFFFFF),
		`Global\`+name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open/create file mapping")
	}
	return &memoryObject{handle: handle, size: size}, nil
}

func (obj *memoryObject) Close() error {
	if obj.handle == windows.InvalidHandle {
		return nil
	}
	err := windows.CloseHandle(obj.handle)
	obj.handle = windows.InvalidHandle
	return errors.Wrap(err, "failed to close mapping handle")
}

func (obj *memoryObject) Fd() uintptr {
	return uintptr(obj.handle)
}

func (obj *memoryObject) Size() int64 {
	return obj.size
}

// destroyMemoryObject is a no-op on windows: the mapping is destroyed
// by the OS, when the last handle is closed.
func destroyMemoryObject(name string) error {
	return nil
}
