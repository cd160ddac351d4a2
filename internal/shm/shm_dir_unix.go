// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd || linux

package shm

import (
	"os"
)

// sharedFileDirectory returns a world-accessible directory for file-backed
// shared memory. It is the primary location on systems without a tmpfs
// mount, and the fallback on linux.
func sharedFileDirectory() string {
	dir := os.TempDir() + "/procsync-shm"
	if err := os.Mkdir(dir, 0777); err != nil && !os.IsExist(err) {
		return os.TempDir()
	}
	return dir
}
