// internal/timelapse/assembler_test.go
package timelapse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records invocations and optionally inspects the staging
// sequence while it still exists.
type fakeRunner struct {
	calls   [][]string
	err     error
	inspect func(args []string)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.inspect != nil {
		f.inspect(args)
	}
	return f.err
}

func writeFrames(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644); err != nil {
			t.Fatalf("write frame %s: %v", n, err)
		}
	}
}

// stagingDirOf extracts the staging directory from the -i pattern.
func stagingDirOf(t *testing.T, args []string) string {
	t.Helper()
	for i, a := range args {
		if a == "-i" && i+1 < len(args) {
			return filepath.Dir(args[i+1])
		}
	}
	t.Fatalf("no -i argument in %v", args)
	return ""
}

func TestAssemble_Success(t *testing.T) {
	dir := t.TempDir()
	// Deliberately created out of order; names sort to capture order.
	writeFrames(t, dir, "job-20260102030405.jpg", "job-20260102030315.jpg", "job-20260102030355.jpg")
	writeFrames(t, dir, "notes.txt")

	var staged []string
	runner := &fakeRunner{
		inspect: func(args []string) {
			staging := stagingDirOf(t, args)
			for i := 0; ; i++ {
				raw, err := os.ReadFile(filepath.Join(staging, fmt.Sprintf(SequencePattern, i)))
				if err != nil {
					break
				}
				staged = append(staged, string(raw))
			}
		},
	}

	a, err := New(dir, 4, runner)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	n, err := a.Assemble(context.Background(), "job")
	if err != nil {
		t.Fatalf("Assemble() err=%v", err)
	}
	if n != 3 {
		t.Fatalf("frames encoded = %d, want 3", n)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("encoder invocations = %d, want 1", len(runner.calls))
	}

	// Sequence index order must equal lexicographic capture order.
	want := []string{"job-20260102030315.jpg", "job-20260102030355.jpg", "job-20260102030405.jpg"}
	if len(staged) != len(want) {
		t.Fatalf("staged = %v", staged)
	}
	for i := range want {
		if staged[i] != want[i] {
			t.Fatalf("staged[%d] = %q, want %q", i, staged[i], want[i])
		}
	}

	// Encoder arguments.
	args := runner.calls[0]
	if args[0] != "ffmpeg" {
		t.Fatalf("command = %q", args[0])
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-framerate 1/4") {
		t.Fatalf("missing input rate: %s", joined)
	}
	if !strings.Contains(joined, "-r 25") {
		t.Fatalf("missing output rate: %s", joined)
	}
	if !strings.HasSuffix(joined, filepath.Join(dir, "job.mp4")) {
		t.Fatalf("missing output path: %s", joined)
	}

	// Originals gone, staging gone, non-frames untouched.
	left, err := a.CountFrames()
	if err != nil {
		t.Fatalf("CountFrames() err=%v", err)
	}
	if left != 0 {
		t.Fatalf("frames left = %d, want 0", left)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "stage-") {
			t.Fatalf("staging dir left behind: %s", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Fatalf("non-frame file touched: %v", err)
	}
}

func TestAssemble_EncoderFailureKeepsFrames(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, "job-a.jpg", "job-b.jpg")

	runner := &fakeRunner{err: errors.New("encoder exploded")}

	a, err := New(dir, 2, runner)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if _, err := a.Assemble(context.Background(), "job"); err == nil {
		t.Fatalf("expected error, got nil")
	}

	left, err := a.CountFrames()
	if err != nil {
		t.Fatalf("CountFrames() err=%v", err)
	}
	if left != 2 {
		t.Fatalf("frames left = %d, want 2 (originals must survive a failed encode)", left)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "stage-") {
			t.Fatalf("staging dir left behind: %s", e.Name())
		}
	}
}

func TestAssemble_NoFramesNoInvocation(t *testing.T) {
	runner := &fakeRunner{}

	a, err := New(t.TempDir(), 2, runner)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	n, err := a.Assemble(context.Background(), "job")
	if err != nil {
		t.Fatalf("Assemble() err=%v", err)
	}
	if n != 0 {
		t.Fatalf("frames encoded = %d, want 0", n)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("encoder invoked with zero frames")
	}
}

func TestCountFrames_IgnoresNonFrames(t *testing.T) {
	dir := t.TempDir()
	writeFrames(t, dir, "a.jpg", "b.jpg")
	writeFrames(t, dir, "old.mp4", "printwatch.lock")

	a, err := New(dir, 2, &fakeRunner{})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	n, err := a.CountFrames()
	if err != nil {
		t.Fatalf("CountFrames() err=%v", err)
	}
	if n != 2 {
		t.Fatalf("CountFrames() = %d, want 2", n)
	}
}
