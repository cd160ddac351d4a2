// Copyright 2025 The procsync authors. All rights reserved.

// Package mmf maps shared memory objects into the process address space.
package mmf

// Mappable is a named object with an os handle, which can be mapped.
type Mappable interface {
	Fd() uintptr
}

// Region is a mapped area of a shared memory object.
type Region struct {
	*region
}

// NewRegion maps the first size bytes of the object for reading and writing.
func NewRegion(obj Mappable, size int) (*Region, error) {
	impl, err := newRegion(obj, size)
	if err != nil {
		return nil, err
	}
	return &Region{impl}, nil
}

// Data returns the mapped bytes.
func (r *Region) Data() []byte {
	return r.region.data()
}

// Close unmaps the region. The underlying object is unaffected.
func (r *Region) Close() error {
	return r.region.close()
}
