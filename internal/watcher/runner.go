// internal/watcher/runner.go
package watcher

import (
	"context"
	"time"
)

// Run executes the tick loop until the context is cancelled.
// One tick, one sleep. No overlap. No retries.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		w.Tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
