package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Depth       int    `json:"depth"`
	Supersample int    `json:"supersample"`
	Palette     string `json:"palette"`
	WebPQuality int    `json:"webp_quality"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Palette   string
	Quality   int
	Workers   int
}

// Resolve fills in any empty fields with defaults. CLI flags take priority
// when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Palette != "" {
		c.Palette = flags.Palette
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Rows <= 0 {
		c.Rows = 512
	}
	if c.Cols <= 0 {
		c.Cols = 512
	}
	if c.Depth <= 0 {
		c.Depth = 64
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
