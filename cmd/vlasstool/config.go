package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	vlass "github.com/Dillon-Z-Dong/VLASS-Tools"
)

// Config holds defaults for the cutout subcommand. Fields may be loaded from
// a JSON file and overridden by command-line flags.
type Config struct {
	Size        int     `json:"size"`
	Parallel    int     `json:"parallel"`
	PreviewSize int     `json:"preview_size"`
	Lo          float64 `json:"lo"`
	Hi          float64 `json:"hi"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Size:        vlass.DefaultCutoutSize,
		Parallel:    1,
		PreviewSize: 0,
	}
}

// LoadConfig reads a JSON config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the extractor would refuse anyway, with a better message.
func (c *Config) Validate() error {
	if c.Size < 1 || c.Size%2 == 0 {
		return fmt.Errorf("size must be a positive odd integer, got %d", c.Size)
	}
	if c.Parallel < 1 {
		c.Parallel = 1
	}
	if c.PreviewSize < 0 {
		c.PreviewSize = 0
	}
	return nil
}
