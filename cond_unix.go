// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd || linux

package procsync

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/procsync/procsync/internal/allocator"
	"github.com/procsync/procsync/internal/mmf"
	"github.com/procsync/procsync/internal/shm"
)

// condRecord is the shared memory layout of a condition variable.
// seq is the notification generation, bumped on every notify.
// waiters counts threads currently registered for a wakeup.
type condRecord struct {
	seq         uint32
	waiters     int32
	initialized uint32
}

var condShmSize = int64(unsafe.Sizeof(condRecord{}))

// condShared is the part of a condition, which lives in shared memory,
// plus the guard mutex serializing its one-time initialization.
type condShared struct {
	guard  *NamedMutex
	obj    *shm.MemoryObject
	region *mmf.Region
	rec    *condRecord
}

func openCondShared(name string) (*condShared, error) {
	guard, err := OpenMutex(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open condition guard mutex")
	}
	obj, err := shm.Open(name, condShmSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open condition shared memory")
	}
	region, err := mmf.NewRegion(obj, int(condShmSize))
	if err != nil {
		obj.Close()
		return nil, errors.Wrap(err, "failed to map condition shared memory")
	}
	rec := (*condRecord)(allocator.ByteSliceData(region.Data()))
	guard.Lock()
	if atomic.LoadUint32(&rec.initialized) == 0 {
		atomic.StoreUint32(&rec.seq, 0)
		atomic.StoreInt32(&rec.waiters, 0)
		atomic.StoreUint32(&rec.initialized, 1)
	}
	guard.Unlock()
	return &condShared{guard: guard, obj: obj, region: region, rec: rec}, nil
}

func destroyCondShared(name string) error {
	if err := shm.DestroyMemoryObject(name); err != nil {
		return errors.Wrap(err, "failed to destroy condition shared memory")
	}
	return UnlinkMutex(name)
}
