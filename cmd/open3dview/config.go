package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// config holds the viewer settings. Zero values fall back to the
// defaults below; an optional TOML file overrides them.
type config struct {
	Width      int       `toml:"width"`
	Height     int       `toml:"height"`
	Background []float64 `toml:"background"`
	CaptureDir string    `toml:"capture_dir"`
	DepthScale float64   `toml:"depth_scale"`
	PointCount int       `toml:"point_count"`
}

func defaultConfig() config {
	return config{
		Width:      1280,
		Height:     720,
		Background: []float64{1, 1, 1},
		DepthScale: 1000,
		PointCount: 20000,
	}
}

// loadConfig reads a TOML file over the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Background) != 3 {
		return cfg, fmt.Errorf("%s: background needs 3 components, got %d",
			path, len(cfg.Background))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("%s: invalid window size %dx%d", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}
