// internal/config/config.go
package config

type Config struct {
	Watcher WatcherConfig `yaml:"watcher"`
}

type WatcherConfig struct {
	Printer   PrinterConfig  `yaml:"printer"`
	Camera    CameraConfig   `yaml:"camera"`
	Snapshots SnapshotConfig `yaml:"snapshots"`
	Poll      PollConfig     `yaml:"poll"`
	Video     VideoConfig    `yaml:"video"`
}

// ---- PRINTER ----

type PrinterConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- CAMERA ----

type CameraConfig struct {
	MJPEGSource string `yaml:"mjpeg_source"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// ---- SNAPSHOTS ----

type SnapshotConfig struct {
	Directory string `yaml:"directory"`

	// Enabled gates all frame capture.
	Enabled bool `yaml:"take_snapshots"`

	// LayerChange restricts capture to Z-height changes.
	LayerChange bool `yaml:"layer_change"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalS int `yaml:"interval_s"`
}

// ---- VIDEO ----

type VideoConfig struct {
	// SecondsPerFrame is the wall-clock time each captured frame
	// occupies in the output video. The encoder input rate is its
	// reciprocal.
	SecondsPerFrame int `yaml:"seconds_per_frame"`
}
