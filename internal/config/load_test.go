// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
watcher:
  printer:
    base_url: http://printer.local/
  camera:
    mjpeg_source: http://cam.local/jpg
    timeout_ms: 2000
  snapshots:
    directory: ./frames/
    take_snapshots: true
    layer_change: true
  poll:
    interval_s: 10
  video:
    seconds_per_frame: 4
`

func TestLoad_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "printwatch.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	w := cfg.Watcher
	if w.Printer.BaseURL != "http://printer.local/" {
		t.Fatalf("base_url = %q", w.Printer.BaseURL)
	}
	if w.Camera.TimeoutMs != 2000 {
		t.Fatalf("camera timeout_ms = %d", w.Camera.TimeoutMs)
	}
	if !w.Snapshots.Enabled || !w.Snapshots.LayerChange {
		t.Fatalf("snapshot flags = %+v", w.Snapshots)
	}
	if w.Poll.IntervalS != 10 || w.Video.SecondsPerFrame != 4 {
		t.Fatalf("poll/video = %+v / %+v", w.Poll, w.Video)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestLoad_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("watcher: [not: a: map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestNormalize(t *testing.T) {
	cfg := validConfig()
	cfg.Watcher.Printer.BaseURL = "http://printer.local/"
	cfg.Watcher.Printer.TimeoutMs = 0
	cfg.Watcher.Snapshots.Directory = "./frames/"

	Normalize(cfg)

	w := cfg.Watcher
	if w.Printer.BaseURL != "http://printer.local" {
		t.Fatalf("base_url not trimmed: %q", w.Printer.BaseURL)
	}
	if w.Printer.TimeoutMs != defaultTimeoutMs {
		t.Fatalf("timeout default not applied: %d", w.Printer.TimeoutMs)
	}
	if w.Snapshots.Directory != "frames" {
		t.Fatalf("directory not cleaned: %q", w.Snapshots.Directory)
	}
}
