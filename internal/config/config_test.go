package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.013, cfg.Diagram.Pressure)
	assert.Equal(t, 21, cfg.Diagram.Points)
	assert.Equal(t, 1001, cfg.Diagram.MaxPoints)
	assert.Equal(t, 200, cfg.Solver.MaxIterations)
	assert.Equal(t, 5*time.Second, cfg.Resolver.OnlineTimeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vapor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
diagram:
  pressure: 0.5
  points: 41
solver:
  max_iterations: 50
resolver:
  offline: true
  online_timeout: 2s
cache:
  redis_url: redis://localhost:6379/0
  ttl: 1h
log_level: debug
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Diagram.Pressure)
	assert.Equal(t, 41, cfg.Diagram.Points)
	assert.Equal(t, 1, cfg.Diagram.Workers, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-7, cfg.Solver.PressureTolerance)
	assert.True(t, cfg.Resolver.Offline)
	assert.Equal(t, 2*time.Second, cfg.Resolver.OnlineTimeout)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("diagram: [oops"), 0644))
	_, err = LoadFromFile(bad)
	assert.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("diagram:\n  points: 1\n"), 0644))
	_, err = LoadFromFile(invalid)
	assert.ErrorContains(t, err, "diagram.points")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"pressure", func(c *Config) { c.Diagram.Pressure = 0 }, "diagram.pressure"},
		{"points above bound", func(c *Config) { c.Diagram.MaxPoints = 11 }, "diagram.max_points"},
		{"workers", func(c *Config) { c.Diagram.Workers = 0 }, "diagram.workers"},
		{"temperature window", func(c *Config) { c.Solver.MaxTemperature = 50 }, "solver.max_temperature"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vapor.yaml")
	cfg := DefaultConfig()
	cfg.Server.Port = 9090
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
