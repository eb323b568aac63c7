// internal/timelapse/assembler.go
package timelapse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// Assembler turns captured frames into one timelapse video.
//
// Originals are never renamed in place: they are linked into a staging
// sequence first, so an interrupted run leaves the capture directory
// intact. Originals are deleted only after the encoder exits zero.
type Assembler struct {
	dir             string
	secondsPerFrame int
	runner          Runner
}

// New creates an assembler over the given snapshot directory.
func New(dir string, secondsPerFrame int, runner Runner) (*Assembler, error) {
	if dir == "" {
		return nil, errors.New("timelapse: snapshot directory required")
	}
	if secondsPerFrame <= 0 {
		return nil, errors.New("timelapse: seconds per frame must be > 0")
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Assembler{
		dir:             dir,
		secondsPerFrame: secondsPerFrame,
		runner:          runner,
	}, nil
}

// CountFrames reports how many captured frames are waiting in the
// snapshot directory.
func (a *Assembler) CountFrames() (int, error) {
	frames, err := a.listFrames()
	if err != nil {
		return 0, err
	}
	return len(frames), nil
}

// Assemble encodes all captured frames into <dir>/<jobBase>.mp4 and
// returns the number of frames encoded.
//
// With zero frames it is a no-op. On encoder failure the original
// frames are kept and the error carries the encoder's stderr.
func (a *Assembler) Assemble(ctx context.Context, jobBase string) (int, error) {
	if jobBase == "" {
		return 0, errors.New("timelapse: job base name required")
	}

	frames, err := a.listFrames()
	if err != nil {
		return 0, err
	}
	if len(frames) == 0 {
		return 0, nil
	}

	// Capture order: timestamps in the filenames sort lexicographically.
	sort.Strings(frames)

	// ------------------------------------------------------------
	// STAGE: link originals into the fixed-width sequence
	// ------------------------------------------------------------

	staging := filepath.Join(a.dir, "stage-"+uuid.NewString())
	if err := os.Mkdir(staging, 0o755); err != nil {
		return 0, fmt.Errorf("timelapse: create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	for i, name := range frames {
		src := filepath.Join(a.dir, name)
		dst := filepath.Join(staging, fmt.Sprintf(SequencePattern, i))
		if err := linkOrCopy(src, dst); err != nil {
			return 0, fmt.Errorf("timelapse: stage %s: %w", name, err)
		}
	}

	// ------------------------------------------------------------
	// ENCODE
	// ------------------------------------------------------------

	output := filepath.Join(a.dir, jobBase+".mp4")
	args := buildEncodeArgs(filepath.Join(staging, SequencePattern), a.secondsPerFrame, output)

	if err := a.runner.Run(ctx, "ffmpeg", args...); err != nil {
		// Keep the originals: a failed encode must not lose frames.
		return 0, fmt.Errorf("timelapse: encode %s: %w", output, err)
	}

	// ------------------------------------------------------------
	// CLEANUP: originals go only after a successful encode
	// ------------------------------------------------------------

	for _, name := range frames {
		if err := os.Remove(filepath.Join(a.dir, name)); err != nil {
			return len(frames), fmt.Errorf("timelapse: remove %s: %w", name, err)
		}
	}

	return len(frames), nil
}

// listFrames returns the bare names of captured frames, unsorted.
// The output video and the lock file share the directory, so only
// frame-extension entries count.
func (a *Assembler) listFrames() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("timelapse: read %s: %w", a.dir, err)
	}

	var frames []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == FrameExt {
			frames = append(frames, e.Name())
		}
	}
	return frames, nil
}

// linkOrCopy hard-links src to dst, copying when the link fails
// (e.g. a filesystem without hard links).
func linkOrCopy(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
