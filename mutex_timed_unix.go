// Copyright 2025 The procsync authors. All rights reserved.

//go:build darwin || freebsd

package procsync

import (
	"time"

	"github.com/procsync/procsync/internal/common"
)

// lockTimeout emulates a timed wait by polling tryLock with exponential
// backoff. SysV semaphores have no semtimedop on these systems.
func (m *mutexImpl) lockTimeout(timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	b := common.NewBackoff()
	for {
		ok, err := m.tryLock()
		if ok || err != nil {
			return ok, err
		}
		if !time.Now().Before(deadline) {
			return false, nil
		}
		b.Sleep()
	}
}
