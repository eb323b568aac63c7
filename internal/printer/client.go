// internal/printer/client.go
package printer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a RepRap-style HTTP status API.
// This adapter is transport-only: it issues requests and decodes the
// two payloads the watcher needs.
type Client struct {
	baseURL string
	http    *http.Client
}

// Config is minimal transport config.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a printer API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("printer client: base url required")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// ---- wire payloads ----

// statusPayload is the type=2 status response.
// coords.xyz is an ordered triple; the last element is Z.
type statusPayload struct {
	Status string `json:"status"`
	Coords struct {
		XYZ []float64 `json:"xyz"`
	} `json:"coords"`
}

// fileInfoPayload is the type=1 fileinfo response.
type fileInfoPayload struct {
	FileName string `json:"fileName"`
}

// Status performs one status query (rr_status?type=2) and decodes it.
func (c *Client) Status(ctx context.Context) (Report, error) {
	var p statusPayload
	if err := c.getJSON(ctx, "/rr_status?type=2", &p); err != nil {
		return Report{}, err
	}

	rep := Report{
		Status: ParseCode(p.Status),
		Code:   p.Status,
	}

	if n := len(p.Coords.XYZ); n > 0 {
		rep.ZHeight = p.Coords.XYZ[n-1]
		rep.HasZ = true
	}

	return rep, nil
}

// JobName fetches the current job's file name (rr_fileinfo?type=1) and
// reduces it to a basename: path directories and the volume prefix are
// dropped, then everything from the first '.' is stripped.
func (c *Client) JobName(ctx context.Context) (string, error) {
	var p fileInfoPayload
	if err := c.getJSON(ctx, "/rr_fileinfo?type=1", &p); err != nil {
		return "", err
	}
	if p.FileName == "" {
		return "", errors.New("printer client: fileinfo reported no file name")
	}
	return JobBaseName(p.FileName), nil
}

// JobBaseName strips the directory part and the extension from a
// reported file name. Firmware may report volume-qualified paths such
// as "0:/gcodes/part.gcode".
func JobBaseName(fileName string) string {
	base := fileName
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}

// ---- internal request helpers ----

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("printer client: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("printer client: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("printer client: %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("printer client: %s: decode: %w", path, err)
	}

	return nil
}
