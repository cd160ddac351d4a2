// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestConditionNotifyOne(t *testing.T) {
	a := assert.New(t)
	name := testName("cond")
	defer UnlinkCondition(name)
	c, err := OpenCondition(name)
	if !a.NoError(err) {
		return
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.WaitSignal()
	}()
	// let the waiter block before notifying
	time.Sleep(250 * time.Millisecond)
	c.NotifyOne()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("waiter was not woken by NotifyOne")
	}
}

func TestConditionNotifyAll(t *testing.T) {
	a := assert.New(t)
	name := testName("cond")
	defer UnlinkCondition(name)
	c, err := OpenCondition(name)
	if !a.NoError(err) {
		return
	}
	const waiters = 3
	var woken int32
	var g errgroup.Group
	for i := 0; i < waiters; i++ {
		g.Go(func() error {
			c.WaitSignal()
			atomic.AddInt32(&woken, 1)
			return nil
		})
	}
	time.Sleep(250 * time.Millisecond)
	c.NotifyAll(0)
	finished := make(chan error, 1)
	go func() { finished <- g.Wait() }()
	select {
	case err := <-finished:
		a.NoError(err)
	case <-time.After(2 * time.Second):
		t.Fatalf("only %d of %d waiters woke up", atomic.LoadInt32(&woken), waiters)
	}
}

func TestConditionWaitTimeoutExpires(t *testing.T) {
	a := assert.New(t)
	name := testName("cond")
	defer UnlinkCondition(name)
	c, err := OpenCondition(name)
	if !a.NoError(err) {
		return
	}
	timeout := 150 * time.Millisecond
	before := time.Now()
	a.False(c.WaitTimeout(timeout))
	elapsed := time.Since(before)
	a.True(elapsed >= timeout, "returned before the timeout: %v", elapsed)
	a.True(elapsed < timeout+150*time.Millisecond, "overshot the timeout: %v", elapsed)
}

func TestConditionWaitTimeoutNotified(t *testing.T) {
	a := assert.New(t)
	name := testName("cond")
	defer UnlinkCondition(name)
	c, err := OpenCondition(name)
	if !a.NoError(err) {
		return
	}
	done := make(chan bool, 1)
	go func() {
		done <- c.WaitTimeout(2 * time.Second)
	}()
	time.Sleep(250 * time.Millisecond)
	c.NotifyOne()
	select {
	case woken := <-done:
		a.True(woken, "a notified wait must not report expiry")
	case <-time.After(3 * time.Second):
		t.Error("waiter did not return")
	}
}

func TestConditionWaitDeadlineInPast(t *testing.T) {
	a := assert.New(t)
	name := testName("cond")
	defer UnlinkCondition(name)
	c, err := OpenCondition(name)
	if !a.NoError(err) {
		return
	}
	before := time.Now()
	a.False(c.WaitDeadline(time.Now().Add(-time.Second)))
	a.True(time.Since(before) < 100*time.Millisecond, "a past deadline must not block")
}

func TestUnlinkConditionIdempotent(t *testing.T) {
	a := assert.New(t)
	name := testName("cond")
	_, err := OpenCondition(name)
	if !a.NoError(err) {
		return
	}
	a.NoError(UnlinkCondition(name))
	a.NoError(UnlinkCondition(name))
	a.NoError(UnlinkCondition(testName("never-created")))
}
