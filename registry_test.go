// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

// Composite constructors open their guard mutex through the registry,
// so registry.get must not hold its lock across construction.
func TestRegistryAllowsReentrantConstruction(t *testing.T) {
	a := assert.New(t)
	cntName := testName("reg-cnt")
	condName := testName("reg-cond")
	rwName := testName("reg-rw")
	defer UnlinkCounter(cntName)
	defer UnlinkCondition(condName)
	defer UnlinkSharedRWLock(rwName)
	done := make(chan error, 1)
	go func() {
		if _, err := OpenCounter(cntName); err != nil {
			done <- err
			return
		}
		if _, err := OpenCondition(condName); err != nil {
			done <- err
			return
		}
		_, err := NewSharedRWLock(rwName)
		done <- err
	}()
	select {
	case err := <-done:
		a.NoError(err)
	case <-time.After(3 * time.Second):
		t.Fatal("composite constructor blocked on the registry lock")
	}
}

func TestRegistryConcurrentOpenReturnsOneInstance(t *testing.T) {
	a := assert.New(t)
	name := testName("reg-race")
	defer UnlinkCounter(name)
	const workers = 8
	counters := make([]*NamedCounter, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			c, err := OpenCounter(name)
			counters[i] = c
			return err
		})
	}
	a.NoError(g.Wait())
	for i := 1; i < workers; i++ {
		a.True(counters[0] == counters[i], "racing opens must converge on one instance")
	}
}
