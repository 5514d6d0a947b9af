package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakeverse/ibsp/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 3, cfg.BezierLevel)
	assert.Equal(t, config.GridSize{X: 64, Y: 64, Z: 128}, cfg.LightGridSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFullOverride(t *testing.T) {
	path := writeConfig(t, `
bezierLevel: 5
lightGridSize:
  x: 32
  y: 32
  z: 64
logLevel: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.BezierLevel)
	assert.Equal(t, config.GridSize{X: 32, Y: 32, Z: 64}, cfg.LightGridSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialFillsDefaults(t *testing.T) {
	path := writeConfig(t, "bezierLevel: 7\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.BezierLevel)
	assert.Equal(t, config.Default().LightGridSize, cfg.LightGridSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadClampsBezierLevel(t *testing.T) {
	path := writeConfig(t, "bezierLevel: 0\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.BezierLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "bezierLevel: [this is not a number\n")
	_, err := config.Load(path)
	require.Error(t, err)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
