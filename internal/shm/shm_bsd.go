// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd

package shm

// Darwin and freebsd expose no portable tmpfs mount point,
// so objects live in regular files, like boost does on windows.
func shmDirectory() (string, error) {
	return sharedFileDirectory(), nil
}
