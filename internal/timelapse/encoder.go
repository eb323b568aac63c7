// internal/timelapse/encoder.go
package timelapse

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FrameExt is the extension of captured frames.
const FrameExt = ".jpg"

// SequencePattern is the fixed-width index pattern the encoder consumes.
// Frame order in the output video equals index order.
const SequencePattern = "image-%015d" + FrameExt

// OutputFPS is the constant output frame rate.
const OutputFPS = 25

// Runner executes one external command to completion.
// Defined here so tests can substitute the encoder binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands via os/exec, capturing stderr for diagnostics.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// buildEncodeArgs constructs the complete ffmpeg argument slice.
//
// The input rate is the rational seconds-per-frame; the output is a
// constant-rate H.264 MP4 so the result plays everywhere.
func buildEncodeArgs(inputPattern string, secondsPerFrame int, outputPath string) []string {
	args := make([]string, 0, 16)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// --- Input sequence ---
	args = append(args,
		"-framerate", fmt.Sprintf("1/%d", secondsPerFrame),
		"-i", inputPattern,
	)

	// --- Video codec (constant) ---
	args = append(args,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", OutputFPS),
	)

	// --- Output ---
	args = append(args, outputPath)

	return args
}
