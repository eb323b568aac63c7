// cmd/printwatch/run_command.go
package main

import (
	"fmt"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/tamzrod/printwatch/internal/preflight"
	"github.com/tamzrod/printwatch/internal/watcher"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the watch loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// --------------------
			// Preflight (fail fast, name the offender)
			// --------------------

			if err := preflight.Gate(ctx, cfg); err != nil {
				return err
			}

			// --------------------
			// Exclusive snapshot directory ownership
			// --------------------

			// The sequence staging step assumes no concurrent writers;
			// enforce that instead of assuming it.
			lockPath := filepath.Join(cfg.Watcher.Snapshots.Directory, "printwatch.lock")
			lock := flock.New(lockPath)

			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock %s: %w", lockPath, err)
			}
			if !locked {
				return fmt.Errorf("another printwatch instance owns %s", lockPath)
			}
			defer func() {
				_ = lock.Unlock()
			}()

			// --------------------
			// Build + run
			// --------------------

			w, err := watcher.Build(cfg)
			if err != nil {
				return err
			}

			w.Seed(ctx)

			log.Printf("watching %s every %ds", cfg.Watcher.Printer.BaseURL, cfg.Watcher.Poll.IntervalS)
			w.Run(ctx)
			log.Printf("shutting down")

			return nil
		},
	}
}
