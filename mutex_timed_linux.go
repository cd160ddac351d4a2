// Copyright 2025 The procsync authors. All rights reserved.

package procsync

import (
	"time"

	"github.com/procsync/procsync/internal/common"
)

// lockTimeout uses semtimedop, restarting the wait with the remaining time
// after a signal interrupt. Expiry surfaces as EAGAIN.
func (m *mutexImpl) lockTimeout(timeout time.Duration) (bool, error) {
	err := common.UninterruptedSyscallTimeout(func(remaining time.Duration) error {
		return semTimedAdd(m.id, -1, common.TimeoutToTimeSpec(remaining))
	}, timeout)
	if err == nil {
		return true, nil
	}
	if common.IsTimeoutErr(err) {
		return false, nil
	}
	return false, err
}
