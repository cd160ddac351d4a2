// Copyright 2025 The procsync authors. All rights reserved.

package commands

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/procsync/procsync"
)

// NewStressCmd returns the stress command: a mixed reader/writer load on one
// lock, verified with a shadow counter. Several instances may target the same
// name from different shells.
func NewStressCmd() *cobra.Command {
	var (
		readers int
		writers int
		runFor  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "stress [name]",
		Short: "Run a mixed reader/writer load on a lock",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			name := "stress-" + uuid.NewString()[:8]
			if len(args) > 0 {
				name = args[0]
			}
			counter, err := procsync.OpenCounter(name + "-shadow")
			if err != nil {
				return err
			}
			logger.Info("stress starting", "name", name, "readers", readers, "writers", writers, "duration", runFor)
			stopAt := time.Now().Add(runFor)
			var g errgroup.Group
			for i := 0; i < readers; i++ {
				g.Go(func() error {
					l, err := procsync.NewSharedRWLock(name)
					if err != nil {
						return err
					}
					for time.Now().Before(stopAt) {
						l.RLock()
						if v := counter.Load(); v != 0 {
							l.RUnlock()
							return errors.Errorf("reader saw a writer in flight: shadow=%d", v)
						}
						l.RUnlock()
					}
					return nil
				})
			}
			for i := 0; i < writers; i++ {
				g.Go(func() error {
					l, err := procsync.NewSharedRWLock(name)
					if err != nil {
						return err
					}
					for time.Now().Before(stopAt) {
						l.Lock()
						if prev := counter.FetchAdd(1); prev != 0 {
							l.Unlock()
							return errors.Errorf("two writers in flight: shadow=%d", prev+1)
						}
						counter.FetchSub(1)
						l.Unlock()
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			logger.Info("stress passed", "name", name)
			return procsync.UnlinkCounter(name + "-shadow")
		},
	}
	cmd.Flags().IntVar(&readers, "readers", 4, "number of reader goroutines")
	cmd.Flags().IntVar(&writers, "writers", 2, "number of writer goroutines")
	cmd.Flags().DurationVar(&runFor, "for", 3*time.Second, "how long to run")

	return cmd
}
