// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd

package procsync

// BSD-derived systems have a strict 31-byte limit on shm names,
// including the leading '/'.
const maxNameLength = 30
