// Copyright 2025 The procsync authors. All rights reserved.

package common

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpenOrCreateCreates(t *testing.T) {
	a := assert.New(t)
	calls := 0
	created, err := OpenOrCreate(func(create bool) error {
		calls++
		a.True(create)
		return nil
	})
	a.NoError(err)
	a.True(created)
	a.Equal(1, calls)
}

func TestOpenOrCreateFallsBackToOpen(t *testing.T) {
	a := assert.New(t)
	created, err := OpenOrCreate(func(create bool) error {
		if create {
			return os.ErrExist
		}
		return nil
	})
	a.NoError(err)
	a.False(created)
}

func TestOpenOrCreateSurvivesRemoveRace(t *testing.T) {
	a := assert.New(t)
	attempt := 0
	created, err := OpenOrCreate(func(create bool) error {
		attempt++
		if attempt < 4 {
			if create {
				return os.ErrExist
			}
			return os.ErrNotExist
		}
		if create {
			return nil
		}
		return os.ErrNotExist
	})
	a.NoError(err)
	a.True(created)
}

func TestOpenOrCreateGivesUp(t *testing.T) {
	a := assert.New(t)
	_, err := OpenOrCreate(func(create bool) error {
		if create {
			return os.ErrExist
		}
		return os.ErrNotExist
	})
	a.Error(err)
}

func TestBackoffDoublesAndCaps(t *testing.T) {
	a := assert.New(t)
	b := NewBackoff()
	a.Equal(backoffInitial, b.cur)
	for i := 0; i < 10; i++ {
		b.Sleep()
	}
	a.Equal(backoffMax, b.cur)
}

func TestBackoffRespectsLowerBound(t *testing.T) {
	a := assert.New(t)
	b := NewBackoff()
	before := time.Now()
	b.Sleep()
	a.True(time.Since(before) >= backoffInitial)
}
