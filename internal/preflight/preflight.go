// internal/preflight/preflight.go
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/tamzrod/printwatch/internal/camera"
	"github.com/tamzrod/printwatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// checks returns the startup checks in contract order: external tool,
// source reachability, then the snapshot directory. Directory creation
// is a side effect, so it runs last.
func checks(ctx context.Context, cfg *config.Config) []func() Result {
	w := cfg.Watcher

	return []func() Result{
		CheckEncoder,
		func() Result {
			return CheckSource(ctx, w.Camera.MJPEGSource, time.Duration(w.Camera.TimeoutMs)*time.Millisecond)
		},
		func() Result {
			return CheckSnapshotDir(w.Snapshots.Directory)
		},
	}
}

// RunAll executes every startup check and reports all outcomes.
// Diagnostic view: nothing short-circuits.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, check := range checks(ctx, cfg) {
		results = append(results, check())
	}
	return results
}

// Gate executes the same checks in the same order but stops at the
// first failure, so an unreachable source aborts before the snapshot
// directory is ever touched.
func Gate(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("preflight: nil config")
	}

	for _, check := range checks(ctx, cfg) {
		if r := check(); !r.Passed {
			return fmt.Errorf("preflight: %s: %s", r.Name, r.Detail)
		}
	}
	return nil
}

// CheckEncoder verifies ffmpeg is on PATH and reports its version line.
func CheckEncoder() Result {
	const name = "ffmpeg"

	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return Result{Name: name, Detail: "not found on PATH"}
	}

	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (-version failed: %v)", path, err)}
	}

	banner := strings.TrimSpace(string(out))
	if idx := strings.Index(banner, "\n"); idx > 0 {
		banner = banner[:idx]
	}
	return Result{Name: name, Passed: true, Detail: banner}
}

// CheckSnapshotDir ensures the snapshot directory exists, creating it
// if absent, and verifies it is writable.
func CheckSnapshotDir(dir string) Result {
	const name = "snapshot directory"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", dir, err)}
	}

	probe, err := os.CreateTemp(dir, ".printwatch-probe-*")
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", dir, err)}
	}
	probe.Close()
	_ = os.Remove(probe.Name())

	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", dir)}
}

// CheckSource issues one GET against the MJPEG source and inspects the
// status line only. Anything but 200 fails the check.
func CheckSource(ctx context.Context, sourceURL string, timeout time.Duration) Result {
	const name = "mjpeg source"

	g, err := camera.New(camera.Config{SourceURL: sourceURL, Timeout: timeout})
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	if err := g.Probe(ctx); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	return Result{Name: name, Passed: true, Detail: sourceURL}
}
