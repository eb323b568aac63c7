// internal/config/normalize.go
package config

import (
	"path/filepath"
	"strings"
)

// defaultTimeoutMs applies when an HTTP timeout is left unset.
const defaultTimeoutMs = 5000

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	w := &cfg.Watcher

	// Endpoint paths are appended verbatim; strip trailing slashes once
	// here instead of guarding every join.
	w.Printer.BaseURL = strings.TrimRight(w.Printer.BaseURL, "/")

	if w.Printer.TimeoutMs == 0 {
		w.Printer.TimeoutMs = defaultTimeoutMs
	}
	if w.Camera.TimeoutMs == 0 {
		w.Camera.TimeoutMs = defaultTimeoutMs
	}

	// Irrelevant while snapshots are off, but the assembler still
	// needs a sane rate if stray frames are ever present.
	if w.Video.SecondsPerFrame <= 0 {
		w.Video.SecondsPerFrame = 1
	}

	w.Snapshots.Directory = filepath.Clean(w.Snapshots.Directory)
}
