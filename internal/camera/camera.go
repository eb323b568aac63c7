// internal/camera/camera.go
package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Grabber pulls single still frames from an MJPEG source.
// Despite the name, the source hands back exactly one JPEG per GET;
// the payload is opaque bytes written verbatim to disk.
type Grabber struct {
	sourceURL string
	http      *http.Client
}

// Config is minimal transport config.
type Config struct {
	SourceURL string
	Timeout   time.Duration
}

// New creates a frame grabber.
func New(cfg Config) (*Grabber, error) {
	if cfg.SourceURL == "" {
		return nil, errors.New("camera: source url required")
	}

	return &Grabber{
		sourceURL: cfg.SourceURL,
		http:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// SourceURL reports the configured source, for diagnostics.
func (g *Grabber) SourceURL() string {
	return g.sourceURL
}

// Probe issues one GET against the source and inspects only the status
// line. Anything but 200 is an error. The body is always discarded.
func (g *Grabber) Probe(ctx context.Context) error {
	resp, err := g.get(ctx)
	if err != nil {
		return fmt.Errorf("camera: probe %s: %w", g.sourceURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("camera: probe %s: unexpected status %d", g.sourceURL, resp.StatusCode)
	}

	return nil
}

// Grab fetches one frame and writes it to path.
// A non-200 response or short write leaves no file behind.
func (g *Grabber) Grab(ctx context.Context, path string) error {
	resp, err := g.get(ctx)
	if err != nil {
		return fmt.Errorf("camera: grab: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("camera: grab: unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("camera: grab: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("camera: grab: write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("camera: grab: close %s: %w", path, err)
	}

	return nil
}

func (g *Grabber) get(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.sourceURL, nil)
	if err != nil {
		return nil, err
	}
	return g.http.Do(req)
}
