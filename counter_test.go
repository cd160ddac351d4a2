// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestCounterOpen(t *testing.T) {
	a := assert.New(t)
	name := testName("cnt")
	defer UnlinkCounter(name)
	c, err := OpenCounter(name)
	if !a.NoError(err) || !a.NotNil(c) {
		return
	}
	a.Equal(name, c.Name())
	a.EqualValues(0, c.Load())
}

func TestCounterFetchAdd(t *testing.T) {
	a := assert.New(t)
	name := testName("cnt")
	defer UnlinkCounter(name)
	c, err := OpenCounter(name)
	if !a.NoError(err) {
		return
	}
	a.EqualValues(0, c.FetchAdd(5))
	a.EqualValues(5, c.FetchAdd(3))
	a.EqualValues(8, c.Load())
	a.EqualValues(8, c.FetchSub(8))
	a.EqualValues(0, c.Load())
	a.EqualValues(0, c.LoadStrong())
}

func TestCounterStore(t *testing.T) {
	a := assert.New(t)
	name := testName("cnt")
	defer UnlinkCounter(name)
	c, err := OpenCounter(name)
	if !a.NoError(err) {
		return
	}
	c.Store(42)
	a.EqualValues(42, c.Load())
	c.Store(-1)
	a.EqualValues(-1, c.Load())
}

func TestCounterFetchApply(t *testing.T) {
	a := assert.New(t)
	name := testName("cnt")
	defer UnlinkCounter(name)
	c, err := OpenCounter(name)
	if !a.NoError(err) {
		return
	}
	c.Store(10)
	prev := c.FetchApply(func(v int64) int64 { return v * v })
	a.EqualValues(10, prev)
	a.EqualValues(100, c.Load())
}

func TestCounterConcurrentAdds(t *testing.T) {
	a := assert.New(t)
	name := testName("cnt")
	defer UnlinkCounter(name)
	c, err := OpenCounter(name)
	if !a.NoError(err) {
		return
	}
	const (
		workers = 8
		iters   = 10000
	)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := 0; j < iters; j++ {
				c.FetchAdd(1)
			}
			for j := 0; j < iters/2; j++ {
				c.FetchSub(1)
			}
			return nil
		})
	}
	a.NoError(g.Wait())
	a.EqualValues(workers*iters/2, c.Load())
}

func TestCounterSharedBetweenInstances(t *testing.T) {
	a := assert.New(t)
	name := testName("cnt")
	defer UnlinkCounter(name)
	c1, err := OpenCounter(name)
	if !a.NoError(err) {
		return
	}
	c2, err := OpenCounter(name)
	if !a.NoError(err) {
		return
	}
	a.True(c1 == c2, "expected one instance per name")
	c1.Store(7)
	a.EqualValues(7, c2.Load())
}

func TestUnlinkCounterIdempotent(t *testing.T) {
	a := assert.New(t)
	name := testName("cnt")
	_, err := OpenCounter(name)
	if !a.NoError(err) {
		return
	}
	a.NoError(UnlinkCounter(name))
	a.NoError(UnlinkCounter(name))
	a.NoError(UnlinkCounter(testName("never-created")))
}
