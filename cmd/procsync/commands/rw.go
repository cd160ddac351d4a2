// Copyright 2025 The procsync authors. All rights reserved.

package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/procsync/procsync"
)

// NewReadCmd returns the read command, which holds a shared lock.
func NewReadCmd() *cobra.Command {
	var holdFor time.Duration

	cmd := &cobra.Command{
		Use:   "read <name>",
		Short: "Hold a readers-writer lock in shared mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			l, err := procsync.NewSharedRWLock(name)
			if err != nil {
				return err
			}
			logger.Info("waiting for shared lock", "name", name)
			start := time.Now()
			l.RLock()
			logger.Info("shared lock acquired", "name", name, "waited", time.Since(start))
			time.Sleep(holdFor)
			l.RUnlock()
			logger.Info("shared lock released", "name", name)
			return nil
		},
	}
	cmd.Flags().DurationVar(&holdFor, "for", 5*time.Second, "how long to hold the lock")

	return cmd
}

// NewWriteCmd returns the write command, which holds an exclusive lock.
func NewWriteCmd() *cobra.Command {
	var holdFor time.Duration

	cmd := &cobra.Command{
		Use:   "write <name>",
		Short: "Hold a readers-writer lock in exclusive mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			l, err := procsync.NewSharedRWLock(name)
			if err != nil {
				return err
			}
			logger.Info("waiting for exclusive lock", "name", name)
			start := time.Now()
			l.Lock()
			logger.Info("exclusive lock acquired", "name", name, "waited", time.Since(start))
			time.Sleep(holdFor)
			l.Unlock()
			logger.Info("exclusive lock released", "name", name)
			return nil
		},
	}
	cmd.Flags().DurationVar(&holdFor, "for", 5*time.Second, "how long to hold the lock")

	return cmd
}
