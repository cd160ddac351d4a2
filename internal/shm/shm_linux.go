// Copyright 2025 The procsync authors. All rights reserved.

package shm

import (
	"sync"

	"golang.org/x/sys/unix"
)

const (
	defaultShmPath   = "/dev/shm"
	cShmfsSuperMagic = 0x01021994
	cRamfsMagic      = 0x858458f6
)

var (
	shmPathOnce sync.Once
	shmPath     string
)

func shmDirectory() (string, error) {
	shmPathOnce.Do(func() {
		var statfs unix.Statfs_t
		if err := unix.Statfs(defaultShmPath, &statfs); err == nil {
			// statfs.Type has different widths across platforms.
			if t := int64(statfs.Type); t == cShmfsSuperMagic || t == cRamfsMagic {
				shmPath = defaultShmPath
				return
			}
		}
		shmPath = sharedFileDirectory()
	})
	return shmPath, nil
}
