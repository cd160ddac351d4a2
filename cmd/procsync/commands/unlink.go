// Copyright 2025 The procsync authors. All rights reserved.

package commands

import (
	"github.com/spf13/cobra"

	"github.com/procsync/procsync"
)

// NewUnlinkCmd returns the unlink command, which removes a composed lock
// and the stand-alone primitives of the same name from the OS namespace.
func NewUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <name>",
		Short: "Remove named objects from the OS namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]
			if err := procsync.UnlinkSharedRWLock(name); err != nil {
				return err
			}
			if err := procsync.UnlinkCondition(name); err != nil {
				return err
			}
			if err := procsync.UnlinkCounter(name); err != nil {
				return err
			}
			if err := procsync.UnlinkMutex(name); err != nil {
				return err
			}
			logger.Info("unlinked", "name", name)
			return nil
		},
	}
}
