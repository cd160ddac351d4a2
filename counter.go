// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/procsync/procsync/internal/allocator"
	"github.com/procsync/procsync/internal/mmf"
	"github.com/procsync/procsync/internal/shm"
)

// counterRecord is the shared memory layout of a counter.
// The value sits at offset 0 of a page-aligned mapping,
// so CPU atomics on it are valid on every supported platform.
type counterRecord struct {
	value       int64
	initialized uint32
}

var counterShmSize = int64(unsafe.Sizeof(counterRecord{}))

// NamedCounter is an atomic int64, shared by all processes, which open it
// under the same name. All accessors use CPU atomics on the mapped word,
// so they are atomic across processes without any lock.
type NamedCounter struct {
	name   string
	guard  *NamedMutex
	obj    *shm.MemoryObject
	region *mmf.Region
	rec    *counterRecord
}

// OpenCounter returns the process-wide NamedCounter instance for the given
// name, creating and zero-initializing the underlying segment, if it does
// not exist yet. Initialization is serialized by a guard mutex of the same
// name, so exactly one opener performs it.
func OpenCounter(name string) (*NamedCounter, error) {
	if err := checkObjectName(name, maxNameLength); err != nil {
		return nil, err
	}
	obj, err := globalRegistry.get(kindCounter, name, func() (interface{}, error) {
		c, err := newCounter(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open named counter %q", name)
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(*NamedCounter), nil
}

func newCounter(name string) (*NamedCounter, error) {
	guard, err := OpenMutex(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open counter guard mutex")
	}
	obj, err := shm.Open(name, counterShmSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open counter shared memory")
	}
	region, err := mmf.NewRegion(obj, int(counterShmSize))
	if err != nil {
		obj.Close()
		return nil, errors.Wrap(err, "failed to map counter shared memory")
	}
	rec := (*counterRecord)(allocator.ByteSliceData(region.Data()))
	guard.Lock()
	if atomic.LoadUint32(&rec.initialized) == 0 {
		atomic.StoreInt64(&rec.value, 0)
		atomic.StoreUint32(&rec.initialized, 1)
	}
	guard.Unlock()
	return &NamedCounter{name: name, guard: guard, obj: obj, region: region, rec: rec}, nil
}

// Name returns the counter name.
func (c *NamedCounter) Name() string {
	return c.name
}

// Load returns the current value.
func (c *NamedCounter) Load() int64 {
	return atomic.LoadInt64(&c.rec.value)
}

// LoadStrong is Load. Go atomics are sequentially consistent,
// so there is no weaker flavor to distinguish from.
func (c *NamedCounter) LoadStrong() int64 {
	return c.Load()
}

// Store sets the value.
func (c *NamedCounter) Store(v int64) {
	atomic.StoreInt64(&c.rec.value, v)
}

// FetchAdd atomically adds delta and returns the previous value.
func (c *NamedCounter) FetchAdd(delta int64) int64 {
	return atomic.AddInt64(&c.rec.value, delta) - delta
}

// FetchSub atomically subtracts delta and returns the previous value.
func (c *NamedCounter) FetchSub(delta int64) int64 {
	return c.FetchAdd(-delta)
}

// FetchApply atomically replaces the value with f(value) and returns
// the previous value. f may be called more, than once.
func (c *NamedCounter) FetchApply(f func(int64) int64) int64 {
	for {
		old := atomic.LoadInt64(&c.rec.value)
		if atomic.CompareAndSwapInt64(&c.rec.value, old, f(old)) {
			return old
		}
	}
}

// UnlinkCounter removes the counter name and its guard mutex from the OS
// namespace. Unlinking a non-existent name is a silent no-op.
func UnlinkCounter(name string) error {
	if err := checkObjectName(name, maxNameLength); err != nil {
		return err
	}
	if err := shm.DestroyMemoryObject(name); err != nil {
		return errors.Wrap(err, "failed to destroy counter shared memory")
	}
	return UnlinkMutex(name)
}
