// internal/preflight/preflight_test.go
package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tamzrod/printwatch/internal/config"
)

func TestCheckSnapshotDir_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "frames")

	r := CheckSnapshotDir(dir)
	if !r.Passed {
		t.Fatalf("check failed: %s", r.Detail)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	// No probe artifacts left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("leftover entries: %v", entries)
	}
}

func TestCheckSnapshotDir_Unwritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permissions are not enforced")
	}

	dir := filepath.Join(t.TempDir(), "frames")
	if err := os.MkdirAll(dir, 0o555); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if r := CheckSnapshotDir(dir); r.Passed {
		t.Fatalf("expected failure for read-only directory")
	}
}

func TestCheckSource_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("frame"))
	}))
	defer srv.Close()

	r := CheckSource(context.Background(), srv.URL, 2*time.Second)
	if !r.Passed {
		t.Fatalf("check failed: %s", r.Detail)
	}
}

func TestCheckSource_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	r := CheckSource(context.Background(), srv.URL, 2*time.Second)
	if r.Passed {
		t.Fatalf("expected failure for 404 source")
	}
}

func TestGate_SourceFailureLeavesDirectoryUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "frames")

	cfg := &config.Config{
		Watcher: config.WatcherConfig{
			Camera:    config.CameraConfig{MJPEGSource: srv.URL, TimeoutMs: 2000},
			Snapshots: config.SnapshotConfig{Directory: dir},
		},
	}

	if err := Gate(context.Background(), cfg); err == nil {
		t.Fatalf("expected gate failure for 404 source")
	}

	// Aborted before the directory check ran: no side effects.
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("snapshot directory was created despite probe failure, stat err=%v", err)
	}
}
