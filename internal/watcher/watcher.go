// internal/watcher/watcher.go
package watcher

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"time"

	"github.com/tamzrod/printwatch/internal/printer"
	"github.com/tamzrod/printwatch/internal/timelapse"
)

// fallbackJobBase labels snapshots when no job name could be fetched.
const fallbackJobBase = "print"

// Watcher is the single sequential control loop: poll, detect
// transitions, snapshot, assemble.
type Watcher struct {
	cfg       Config
	printer   StatusSource
	camera    FrameSource
	assembler Assembler

	state State

	now  func() time.Time
	logf func(format string, args ...any)
}

// New creates a watcher with immutable config.
func New(cfg Config, src StatusSource, cam FrameSource, asm Assembler) (*Watcher, error) {
	if cfg.SnapshotDir == "" {
		return nil, errors.New("watcher: snapshot directory required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("watcher: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("watcher: status source required")
	}
	if cfg.TakeSnapshots && cam == nil {
		return nil, errors.New("watcher: frame source required when snapshots are enabled")
	}
	if asm == nil {
		return nil, errors.New("watcher: assembler required")
	}

	return &Watcher{
		cfg:       cfg,
		printer:   src,
		camera:    cam,
		assembler: asm,
		state: State{
			Previous: printer.StatusQueryFailed,
			Current:  printer.StatusQueryFailed,
		},
		now:  time.Now,
		logf: log.Printf,
	}, nil
}

// State returns a copy of the loop state.
func (w *Watcher) State() State {
	return w.state
}

// Seed issues one status query before the loop starts so a watcher
// attached mid-print begins with the right job name and Z-height.
// A failed seed is not fatal: the loop recovers on its first good tick.
func (w *Watcher) Seed(ctx context.Context) {
	rep, err := w.printer.Status(ctx)
	if err != nil {
		w.logf("seed status query failed: %v", err)
		return
	}

	w.state.Previous = rep.Status

	if rep.Status == printer.StatusPrinting {
		w.fetchJobBase(ctx)
		if rep.HasZ {
			w.state.LastZ = rep.ZHeight
			w.state.HasLastZ = true
		}
	}
}

// Tick runs exactly one loop iteration.
func (w *Watcher) Tick(ctx context.Context) {
	ts := w.now().Format(TimestampLayout)

	rep, err := w.printer.Status(ctx)
	if err != nil {
		// A failed query is its own state, never a printer state.
		// Previous is left untouched so the real transition still
		// fires once the printer answers again.
		w.logf("[%s] status query failed: %v", ts, err)
		return
	}

	w.state.Current = rep.Status

	if rep.HasZ {
		w.logf("[%s] printer status: %s (z=%.3f)", ts, rep.Status, rep.ZHeight)
	} else {
		w.logf("[%s] printer status: %s", ts, rep.Status)
	}

	// ------------------------------------------------------------
	// TRANSITION DETECTION
	// ------------------------------------------------------------

	if w.state.Current != w.state.Previous {
		// Covers both "print just started" and reattach after a
		// status flicker.
		if w.state.Current == printer.StatusPrinting {
			w.fetchJobBase(ctx)
		}

		// Printing -> Idle is a completed print.
		if w.state.Previous == printer.StatusPrinting && w.state.Current == printer.StatusIdle {
			n, err := w.assembler.Assemble(ctx, w.jobBase())
			switch {
			case err != nil:
				// Frames are kept by the assembler; nothing is lost.
				w.logf("[%s] timelapse assembly failed: %v", ts, err)
			case n > 0:
				w.logf("[%s] timelapse assembled from %d frames: %s.mp4", ts, n, w.jobBase())
			}
		}
	}

	// ------------------------------------------------------------
	// SNAPSHOT POLICY
	// ------------------------------------------------------------

	if w.cfg.TakeSnapshots && w.state.Current == printer.StatusPrinting {
		if w.shouldSnapshot(rep) {
			name := w.jobBase() + "-" + ts + timelapse.FrameExt
			path := filepath.Join(w.cfg.SnapshotDir, name)

			if err := w.camera.Grab(ctx, path); err != nil {
				// Z stays unrecorded so the next tick retries.
				w.logf("[%s] snapshot failed: %v", ts, err)
			} else {
				w.logf("[%s] snapshot: %s", ts, name)
				if rep.HasZ {
					w.state.LastZ = rep.ZHeight
					w.state.HasLastZ = true
				}
			}
		}
	}

	w.state.Previous = w.state.Current
}

// shouldSnapshot applies the layer-change gate.
func (w *Watcher) shouldSnapshot(rep printer.Report) bool {
	if !w.cfg.LayerChangeOnly {
		return true
	}
	if !rep.HasZ {
		// No Z reported: nothing to gate on, skip rather than spam.
		return false
	}
	return !w.state.HasLastZ || rep.ZHeight != w.state.LastZ
}

// fetchJobBase performs exactly one job-name fetch, keeping the prior
// name when the fetch fails.
func (w *Watcher) fetchJobBase(ctx context.Context) {
	base, err := w.printer.JobName(ctx)
	if err != nil {
		w.logf("job name fetch failed: %v", err)
		return
	}
	w.state.JobBase = base
}

func (w *Watcher) jobBase() string {
	if w.state.JobBase == "" {
		return fallbackJobBase
	}
	return w.state.JobBase
}
