// internal/watcher/builder.go
package watcher

import (
	"time"

	"github.com/tamzrod/printwatch/internal/camera"
	cfg "github.com/tamzrod/printwatch/internal/config"
	"github.com/tamzrod/printwatch/internal/printer"
	"github.com/tamzrod/printwatch/internal/timelapse"
)

// Build constructs a Watcher from validated, normalized configuration,
// wiring the concrete printer client, frame grabber, and assembler.
func Build(c *cfg.Config) (*Watcher, error) {
	wc := c.Watcher

	src, err := printer.NewClient(printer.Config{
		BaseURL: wc.Printer.BaseURL,
		Timeout: time.Duration(wc.Printer.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	cam, err := camera.New(camera.Config{
		SourceURL: wc.Camera.MJPEGSource,
		Timeout:   time.Duration(wc.Camera.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	asm, err := timelapse.New(wc.Snapshots.Directory, wc.Video.SecondsPerFrame, nil)
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			SnapshotDir:     wc.Snapshots.Directory,
			TakeSnapshots:   wc.Snapshots.Enabled,
			LayerChangeOnly: wc.Snapshots.LayerChange,
			Interval:        time.Duration(wc.Poll.IntervalS) * time.Second,
		},
		src,
		cam,
		asm,
	)
}
