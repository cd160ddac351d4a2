// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func testName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func TestMutexOpen(t *testing.T) {
	a := assert.New(t)
	name := testName("mtx")
	defer UnlinkMutex(name)
	m, err := OpenMutex(name)
	if !a.NoError(err) || !a.NotNil(m) {
		return
	}
	a.Equal(name, m.Name())
	m.Lock()
	m.Unlock()
}

func TestMutexOpenBadName(t *testing.T) {
	a := assert.New(t)
	_, err := OpenMutex("")
	a.Error(err)
	_, err = OpenMutex("has/slash")
	a.Error(err)
	_, err = OpenMutex("has space")
	a.Error(err)
}

func TestMutexOpenReturnsSameInstance(t *testing.T) {
	a := assert.New(t)
	name := testName("mtx")
	defer UnlinkMutex(name)
	m1, err := OpenMutex(name)
	if !a.NoError(err) {
		return
	}
	m2, err := OpenMutex(name)
	if !a.NoError(err) {
		return
	}
	a.True(m1 == m2, "expected one instance per name")
}

func TestMutexValueInc(t *testing.T) {
	a := assert.New(t)
	name := testName("mtx")
	defer UnlinkMutex(name)
	m, err := OpenMutex(name)
	if !a.NoError(err) {
		return
	}
	const (
		workers = 4
		iters   = 1000
	)
	shared := 0
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := 0; j < iters; j++ {
				m.Lock()
				shared++
				m.Unlock()
			}
			return nil
		})
	}
	a.NoError(g.Wait())
	a.Equal(workers*iters, shared)
}

func TestMutexTryLock(t *testing.T) {
	a := assert.New(t)
	name := testName("mtx")
	defer UnlinkMutex(name)
	m, err := OpenMutex(name)
	if !a.NoError(err) {
		return
	}
	a.True(m.TryLock())
	a.False(m.TryLock())
	m.Unlock()
	a.True(m.TryLock())
	m.Unlock()
}

func TestMutexLockTimeout(t *testing.T) {
	a := assert.New(t)
	name := testName("mtx")
	defer UnlinkMutex(name)
	m, err := OpenMutex(name)
	if !a.NoError(err) {
		return
	}
	m.Lock()
	defer m.Unlock()
	timeout := 100 * time.Millisecond
	before := time.Now()
	a.False(m.LockTimeout(timeout))
	elapsed := time.Since(before)
	a.True(elapsed >= timeout, "returned before the timeout: %v", elapsed)
	a.True(elapsed < timeout+150*time.Millisecond, "overshot the timeout: %v", elapsed)
}

func TestMutexLockTimeoutSucceeds(t *testing.T) {
	a := assert.New(t)
	name := testName("mtx")
	defer UnlinkMutex(name)
	m, err := OpenMutex(name)
	if !a.NoError(err) {
		return
	}
	m.Lock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.True(m.LockTimeout(2 * time.Second))
		m.Unlock()
	}()
	time.Sleep(100 * time.Millisecond)
	m.Unlock()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Error("timed lock did not succeed after unlock")
	}
}

func TestMutexLockDeadlineInPast(t *testing.T) {
	a := assert.New(t)
	name := testName("mtx")
	defer UnlinkMutex(name)
	m, err := OpenMutex(name)
	if !a.NoError(err) {
		return
	}
	m.Lock()
	defer m.Unlock()
	before := time.Now()
	a.False(m.LockDeadline(time.Now().Add(-time.Second)))
	a.True(time.Since(before) < 50*time.Millisecond, "a past deadline must not block")
}

func TestUnlinkMutexIdempotent(t *testing.T) {
	r := require.New(t)
	name := testName("mtx")
	_, err := OpenMutex(name)
	r.NoError(err)
	r.NoError(UnlinkMutex(name))
	r.NoError(UnlinkMutex(name))
	r.NoError(UnlinkMutex(testName("never-created")))
}

func TestCheckObjectName(t *testing.T) {
	a := assert.New(t)
	a.NoError(checkObjectName("valid_Name-1.2", maxNameLength))
	a.Error(checkObjectName("", maxNameLength))
	a.Error(checkObjectName("bad*char", maxNameLength))
	long := make([]byte, maxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	a.Error(checkObjectName(string(long), maxNameLength))
	a.NoError(checkObjectName(string(long[:maxNameLength]), maxNameLength))
}
