// Package config holds the tunables the distilled spec left as magic
// numbers: the Bézier subdivision level, the light-volume grid cell size,
// and the logging level. Everything else about a loaded scene is fixed by
// the IBSP format itself and has no business being configurable.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GridSize is the light-volume sampling cell size in map units, one
// component per axis.
type GridSize struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Config collects every runtime-tunable knob the core consults.
type Config struct {
	// BezierLevel is the fixed subdivision level L used to tessellate
	// every patch face. Must be >= 1.
	BezierLevel int `yaml:"bezierLevel"`

	// LightGridSize is the cell size used to bucket the worldspawn AABB
	// into the light-volume grid.
	LightGridSize GridSize `yaml:"lightGridSize"`

	// LogLevel feeds internal/logging.New.
	LogLevel string `yaml:"logLevel"`
}

// Default returns the configuration that reproduces the values the
// original implementation hardcoded: L=3, grid (64, 64, 128).
func Default() *Config {
	return &Config{
		BezierLevel:   3,
		LightGridSize: GridSize{X: 64, Y: 64, Z: 128},
		LogLevel:      "info",
	}
}

// Load reads a YAML config file, filling in any field left zero with the
// default value so a partial config file is valid.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	if cfg.BezierLevel < 1 {
		cfg.BezierLevel = 1
	}
	if cfg.LightGridSize == (GridSize{}) {
		cfg.LightGridSize = Default().LightGridSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
