// Copyright 2025 The procsync authors. All rights reserved.

package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/procsync/procsync"
)

// NewHoldCmd returns the hold command, which locks a named mutex
// for a while.
func NewHoldCmd() *cobra.Command {
	var holdFor time.Duration

	cmd := &cobra.Command{
		Use:   "hold <name>",
		Short: "Lock a named mutex and hold it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			m, err := procsync.OpenMutex(name)
			if err != nil {
				return err
			}
			logger.Info("waiting for mutex", "name", name)
			start := time.Now()
			m.Lock()
			logger.Info("mutex acquired", "name", name, "waited", time.Since(start))
			time.Sleep(holdFor)
			m.Unlock()
			logger.Info("mutex released", "name", name)
			return nil
		},
	}
	cmd.Flags().DurationVar(&holdFor, "for", 5*time.Second, "how long to hold the mutex")

	return cmd
}
