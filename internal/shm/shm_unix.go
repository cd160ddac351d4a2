// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd || linux

package shm

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

const shmPerm = 0644

type memoryObject struct {
	file *os.File
}

func openMemoryObject(name string, size int64) (*memoryObject, error) {
	path, err := shmName(name)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, shmPerm)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open shm file")
	}
	obj := &memoryObject{file: file}
	if obj.Size() < size {
		if err = file.Truncate(size); err != nil {
			file.Close()
			return nil, errors.Wrap(err, "failed to resize shm file")
		}
	}
	return obj, nil
}

func (obj *memoryObject) Close() error {
	return obj.file.Close()
}

func (obj *memoryObject) Fd() uintptr {
	return obj.file.Fd()
}

func (obj *memoryObject) Size() int64 {
	fileInfo, err := obj.file.Stat()
	if err != nil {
		return 0
	}
	return fileInfo.Size()
}

func destroyMemoryObject(name string) error {
	path, err := shmName(name)
	if err != nil {
		return err
	}
	if err = os.Remove(path); os.IsNotExist(err) {
		err = nil
	}
	return err
}

func shmName(name string) (string, error) {
	if len(name) == 0 || strings.ContainsRune(name, '/') {
		return "", errors.New("invalid shm name")
	}
	dir, err := shmDirectory()
	if err != nil {
		return "", errors.Wrap(err, "error locating the shared memory path")
	}
	return dir + "/" + name, nil
}
