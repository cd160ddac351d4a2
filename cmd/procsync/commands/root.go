// Copyright 2025 The procsync authors. All rights reserved.

// Package commands implements the procsync command line tool. Each
// subcommand holds or exercises one named primitive, so running the tool
// from several shells demonstrates true cross-process synchronization.
package commands

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "procsync",
	ReportTimestamp: true,
})

const longDesc = `procsync exercises named, cross-process synchronization primitives.

Every subcommand addresses OS-level objects by name, so two invocations
with the same name from different shells contend for the same lock.
`

// NewRootCmd returns the root procsync command.
func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "procsync",
		Short:         "Exercise named cross-process synchronization primitives",
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(NewHoldCmd())
	cmd.AddCommand(NewReadCmd())
	cmd.AddCommand(NewWriteCmd())
	cmd.AddCommand(NewCounterCmd())
	cmd.AddCommand(NewStressCmd())
	cmd.AddCommand(NewUnlinkCmd())

	return cmd
}
