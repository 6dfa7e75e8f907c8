// Package config loads the YAML configuration shared by the CLI, HTTP and MCP surfaces.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/vapor/internal/diagram"
	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/internal/thermo"
	"github.com/aretw0/vapor/pkg/adapters/pubchem"
	"gopkg.in/yaml.v3"
)

// Config represents the complete vapor configuration.
type Config struct {
	Diagram  DiagramConfig  `yaml:"diagram"`
	Solver   thermo.Config  `yaml:"solver"`
	Resolver ResolverConfig `yaml:"resolver"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	LogLevel string         `yaml:"log_level"`
}

// DiagramConfig holds request defaults.
type DiagramConfig struct {
	// Pressure in bar used when a request does not name one.
	Pressure float64 `yaml:"pressure"`
	Points   int     `yaml:"points"`
	// MaxPoints bounds the point count any surface accepts.
	MaxPoints int `yaml:"max_points"`
	// Workers bounds concurrent point solves (1 = sequential).
	Workers int `yaml:"workers"`
}

// ResolverConfig configures the property resolution chain.
type ResolverConfig struct {
	// Offline disables the online property database tier.
	Offline bool `yaml:"offline"`
	// OnlineTimeout bounds a single online lookup.
	OnlineTimeout time.Duration `yaml:"online_timeout"`
	// BaseURL overrides the PubChem REST endpoint.
	BaseURL string `yaml:"base_url"`
	// Library is a directory of curated substance and pair documents (optional).
	Library string `yaml:"library"`
}

// CacheConfig selects the cache for online lookups.
type CacheConfig struct {
	// RedisURL enables the Redis cache (empty = in-memory).
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Diagram: DiagramConfig{
			Pressure:  1.013,
			Points:    diagram.DefaultPoints,
			MaxPoints: diagram.DefaultMaxPoints,
			Workers:   1,
		},
		Solver: thermo.DefaultConfig(),
		Resolver: ResolverConfig{
			OnlineTimeout: 5 * time.Second,
			BaseURL:       pubchem.DefaultBaseURL,
		},
		Cache: CacheConfig{
			TTL: 7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		LogLevel: "info",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Diagram.Pressure <= 0 {
		return fmt.Errorf("diagram.pressure must be positive")
	}
	if c.Diagram.Points < 2 {
		return fmt.Errorf("diagram.points must be at least 2")
	}
	if c.Diagram.Points > c.Diagram.MaxPoints {
		return fmt.Errorf("diagram.points must not exceed diagram.max_points (%d)", c.Diagram.MaxPoints)
	}
	if c.Diagram.Workers < 1 {
		return fmt.Errorf("diagram.workers must be at least 1")
	}
	if c.Solver.MaxIterations < 0 || c.Solver.PressureTolerance < 0 || c.Solver.TemperatureTolerance < 0 {
		return fmt.Errorf("solver settings must not be negative")
	}
	if c.Solver.MaxTemperature != 0 && c.Solver.MaxTemperature <= c.Solver.MinTemperature {
		return fmt.Errorf("solver.max_temperature must exceed solver.min_temperature")
	}
	if c.Resolver.OnlineTimeout < 0 {
		return fmt.Errorf("resolver.online_timeout must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of DefaultConfig.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
