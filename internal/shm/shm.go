// Copyright 2025 The procsync authors. All rights reserved.

// Package shm provides named shared memory objects, which procsync primitives
// use for their process-visible state. On unix an object is a file on a
// tmpfs-like filesystem, on windows it is a pagefile-backed named mapping.
package shm

// MemoryObject is a named object, which can be mapped
// into the address space of several processes.
type MemoryObject struct {
	*memoryObject
}

// Open opens or creates a shared memory object with the given name,
// ensuring its size is at least the given one.
//	name - object name, no slashes.
//	size - minimal object size.
func Open(name string, size int64) (*MemoryObject, error) {
	impl, err := openMemoryObject(name, size)
	if err != nil {
		return nil, err
	}
	return &MemoryObject{impl}, nil
}

// DestroyMemoryObject removes the object's name from the OS namespace.
// Existing mappings stay valid. Removing a non-existent object is not an error.
func DestroyMemoryObject(name string) error {
	return destroyMemoryObject(name)
}
