// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd || linux

package procsync

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/procsync/procsync/internal/common"
)

const mutexPerm = 0o644

// mutexImpl is a SysV semaphore set of size 1, used as a binary semaphore.
// The semaphore key is derived from a file in the temp directory, so unrelated
// processes agree on the same kernel object for the same name.
type mutexImpl struct {
	name string
	id   int
}

func newMutexImpl(name string) (*mutexImpl, error) {
	k, err := common.KeyForName(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain semaphore key")
	}
	var id int
	creator := func(create bool) error {
		flags := mutexPerm
		if create {
			flags |= common.IpcCreate | common.IpcExcl
		}
		var semErr error
		id, semErr = semget(k, 1, flags)
		return semErr
	}
	created, err := common.OpenOrCreate(creator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create semaphore")
	}
	impl := &mutexImpl{name: name, id: id}
	if created {
		// A freshly created SysV semaphore is zero. Post once, so the first
		// Lock succeeds.
		if err = impl.unlock(); err != nil {
			_ = semctl(id, 0, common.IpcRmid)
			return nil, errors.Wrap(err, "failed to set initial semaphore value")
		}
	}
	return impl, nil
}

func (m *mutexImpl) lock() error {
	return common.UninterruptedSyscall(func() error {
		return semAdd(m.id, -1, 0)
	})
}

func (m *mutexImpl) tryLock() (bool, error) {
	err := semAdd(m.id, -1, int16(common.IpcNoWait))
	if err == nil {
		return true, nil
	}
	if common.IsTimeoutErr(err) {
		return false, nil
	}
	return false, err
}

func (m *mutexImpl) unlock() error {
	return semAdd(m.id, 1, 0)
}

func unlinkMutexName(name string) error {
	k, err := common.KeyForName(name)
	if err != nil {
		return errors.Wrap(err, "failed to obtain semaphore key")
	}
	id, err := semget(k, 1, mutexPerm)
	if err != nil {
		if os.IsNotExist(err) {
			_ = os.Remove(common.TmpFilename(name))
			return nil
		}
		return errors.Wrap(err, "failed to open semaphore")
	}
	if err = semctl(id, 0, common.IpcRmid); err != nil {
		if !common.SyscallErrHasCode(err, unix.EIDRM) && !common.SyscallErrHasCode(err, unix.EINVAL) {
			return errors.Wrap(err, "failed to remove semaphore")
		}
	}
	if err = os.Remove(common.TmpFilename(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove key file")
	}
	return nil
}
