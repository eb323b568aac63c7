// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	w := cfg.Watcher

	// ------------------------------------------------------------
	// ENDPOINT VALIDATION
	// ------------------------------------------------------------

	if err := validateURL("watcher.printer.base_url", w.Printer.BaseURL); err != nil {
		return err
	}
	if err := validateURL("watcher.camera.mjpeg_source", w.Camera.MJPEGSource); err != nil {
		return err
	}

	if w.Printer.TimeoutMs < 0 {
		return fmt.Errorf("watcher.printer.timeout_ms must be >= 0, got %d", w.Printer.TimeoutMs)
	}
	if w.Camera.TimeoutMs < 0 {
		return fmt.Errorf("watcher.camera.timeout_ms must be >= 0, got %d", w.Camera.TimeoutMs)
	}

	// ------------------------------------------------------------
	// SNAPSHOT / LOOP VALIDATION
	// ------------------------------------------------------------

	if w.Snapshots.Directory == "" {
		return fmt.Errorf("watcher.snapshots.directory is required")
	}

	if w.Poll.IntervalS <= 0 {
		return fmt.Errorf("watcher.poll.interval_s must be > 0, got %d", w.Poll.IntervalS)
	}

	// Snapshot filenames carry one-second timestamps; sub-second polling
	// would silently overwrite frames within the same second.
	if w.Snapshots.Enabled && w.Poll.IntervalS < 1 {
		return fmt.Errorf("watcher.poll.interval_s must be >= 1 when snapshots are enabled")
	}

	if w.Snapshots.Enabled && w.Video.SecondsPerFrame <= 0 {
		return fmt.Errorf("watcher.video.seconds_per_frame must be > 0, got %d", w.Video.SecondsPerFrame)
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %v", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", field, raw)
	}
	return nil
}
