// Copyright 2025 The procsync authors. All rights reserved.

package commands

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/procsync/procsync"
)

// NewCounterCmd returns the counter command, which hammers a named counter
// from several goroutines and prints the final value.
func NewCounterCmd() *cobra.Command {
	var (
		add     int64
		workers int
	)

	cmd := &cobra.Command{
		Use:   "counter <name>",
		Short: "Increment a named counter concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			name := args[0]
			c, err := procsync.OpenCounter(name)
			if err != nil {
				return err
			}
			var g errgroup.Group
			for i := 0; i < workers; i++ {
				g.Go(func() error {
					for j := int64(0); j < add; j++ {
						c.FetchAdd(1)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			logger.Info("increments done", "name", name, "workers", workers, "per_worker", add)
			cc.Println(c.Load())
			return nil
		},
	}
	cmd.Flags().Int64Var(&add, "add", 1000, "increments per worker")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent workers")

	return cmd
}
