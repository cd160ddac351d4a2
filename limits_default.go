// Copyright 2025 The procsync authors. All rights reserved.

//go:build !darwin && !freebsd

package procsync

// Linux and windows are more permissive; keep the limit conservative but practical.
const maxNameLength = 128
