// Copyright 2025 The procsync authors. All rights reserved.

package mmf

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/procsync/procsync/internal/shm"
)

func TestRegionsShareData(t *testing.T) {
	a := assert.New(t)
	name := "mmf-test-" + uuid.NewString()[:8]
	defer shm.DestroyMemoryObject(name)
	obj, err := shm.Open(name, 64)
	if !a.NoError(err) {
		return
	}
	defer obj.Close()
	r1, err := NewRegion(obj, 64)
	if !a.NoError(err) {
		return
	}
	defer r1.Close()
	r2, err := NewRegion(obj, 64)
	if !a.NoError(err) {
		return
	}
	defer r2.Close()
	copy(r1.Data(), "hello")
	a.Equal([]byte("hello"), r2.Data()[:5])
}

func TestRegionCloseTwice(t *testing.T) {
	a := assert.New(t)
	name := "mmf-test-" + uuid.NewString()[:8]
	defer shm.DestroyMemoryObject(name)
	obj, err := shm.Open(name, 16)
	if !a.NoError(err) {
		return
	}
	defer obj.Close()
	r, err := NewRegion(obj, 16)
	if !a.NoError(err) {
		return
	}
	a.NoError(r.Close())
	a.NoError(r.Close())
}
