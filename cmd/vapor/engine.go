package main

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/vapor"
	"github.com/aretw0/vapor/internal/config"
	"github.com/aretw0/vapor/internal/logging"
	"github.com/aretw0/vapor/pkg/observability"
	"github.com/spf13/cobra"
)

// loadConfig reads the configuration file, if any, and applies the persistent flags over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg.Resolver.Offline = true
	}
	if url, _ := cmd.Flags().GetString("redis"); url != "" {
		cfg.Cache.RedisURL = url
	}
	if dir, _ := cmd.Flags().GetString("library"); dir != "" {
		cfg.Resolver.Library = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// createEngine initializes a vapor engine with standard CLI conventions.
func createEngine(cmd *cobra.Command, opts ...vapor.Option) (*vapor.Engine, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	engineOpts := append([]vapor.Option{
		vapor.WithConfig(cfg),
		vapor.WithLogger(logger),
	}, opts...)
	if logger.Enabled(cmd.Context(), slog.LevelDebug) {
		engineOpts = append(engineOpts, vapor.WithHooks(observability.LogHooks(logger)))
	}

	engine, err := vapor.New(engineOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, logger, nil
}
