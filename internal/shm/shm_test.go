// Copyright 2025 The procsync authors. All rights reserved.

package shm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObjectName() string {
	return "shm-test-" + uuid.NewString()[:8]
}

func TestOpenCreatesAndResizes(t *testing.T) {
	a := assert.New(t)
	name := testObjectName()
	defer DestroyMemoryObject(name)
	obj, err := Open(name, 128)
	if !a.NoError(err) || !a.NotNil(obj) {
		return
	}
	a.True(obj.Size() >= 128)
	a.NoError(obj.Close())
}

func TestOpenDoesNotShrink(t *testing.T) {
	a := assert.New(t)
	name := testObjectName()
	defer DestroyMemoryObject(name)
	obj, err := Open(name, 256)
	if !a.NoError(err) {
		return
	}
	obj.Close()
	obj, err = Open(name, 64)
	if !a.NoError(err) {
		return
	}
	defer obj.Close()
	a.True(obj.Size() >= 256, "reopening with a smaller size must not truncate")
}

func TestOpenRejectsBadName(t *testing.T) {
	a := assert.New(t)
	_, err := Open("", 16)
	a.Error(err)
}

func TestDestroyIdempotent(t *testing.T) {
	r := require.New(t)
	name := testObjectName()
	obj, err := Open(name, 16)
	r.NoError(err)
	r.NoError(obj.Close())
	r.NoError(DestroyMemoryObject(name))
	r.NoError(DestroyMemoryObject(name))
}
