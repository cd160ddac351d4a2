// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd || linux

package mmf

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type region struct {
	mapped []byte
}

func newRegion(obj Mappable, size int) (*region, error) {
	mapped, err := unix.Mmap(int(obj.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmap failed")
	}
	return &region{mapped: mapped}, nil
}

func (r *region) data() []byte {
	return r.mapped
}

func (r *region) close() error {
	if r.mapped == nil {
		return nil
	}
	err := unix.Munmap(r.mapped)
	r.mapped = nil
	return errors.Wrap(err, "munmap failed")
}
