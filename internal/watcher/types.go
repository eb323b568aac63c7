// internal/watcher/types.go
package watcher

import (
	"context"
	"time"

	"github.com/tamzrod/printwatch/internal/printer"
)

// StatusSource abstracts the printer API operations the watcher needs.
type StatusSource interface {
	Status(ctx context.Context) (printer.Report, error)
	JobName(ctx context.Context) (string, error)
}

// FrameSource captures one still frame to the given path.
type FrameSource interface {
	Grab(ctx context.Context, path string) error
}

// Assembler encodes the captured frames for one finished job.
// It must be a no-op (zero frames, nil error) when nothing was captured.
type Assembler interface {
	Assemble(ctx context.Context, jobBase string) (int, error)
}

// Config is the minimal runtime config the watcher needs.
type Config struct {
	SnapshotDir     string
	TakeSnapshots   bool
	LayerChangeOnly bool
	Interval        time.Duration
}

// State is the loop state. One watcher owns exactly one State; it is
// mutated once per tick and never persisted.
type State struct {
	Previous printer.Status
	Current  printer.Status

	// LastZ is the Z-height recorded at the last snapshot.
	// Valid only when HasLastZ is true.
	LastZ    float64
	HasLastZ bool

	// JobBase labels snapshots and the output video.
	JobBase string
}

// TimestampLayout renders tick timestamps with one-second resolution,
// numeric and lexicographically sortable.
const TimestampLayout = "20060102150405"
