package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/featureconfig/pkg/config"
	"github.com/dmitrymomot/featureconfig/pkg/evalsource"
	"github.com/dmitrymomot/featureconfig/pkg/feature"
	"github.com/dmitrymomot/featureconfig/pkg/featureapi"
	"github.com/dmitrymomot/featureconfig/pkg/logger"
)

const envPrefix = "FEATURE_"

type globalFlags struct {
	source    string
	logLevel  string
	logFormat string
	envFiles  []string
}

type appConfig struct {
	Source          evalsource.Config
	Server          featureapi.ServerConfig
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m"`
}

type app struct {
	cfg      appConfig
	logger   *slog.Logger
	fetcher  feature.Fetcher
	provider *feature.Provider
}

// loadConfig reads FEATURE_* variables; set flags win over the environment.
func loadConfig(cmd *cobra.Command, flags *globalFlags, overlay map[string]string) (appConfig, error) {
	if overlay == nil {
		overlay = make(map[string]string)
	}
	set := func(flag, key, value string) {
		if cmd.Flags().Changed(flag) {
			overlay[envPrefix+key] = value
		}
	}
	set("source", "SOURCE", flags.source)
	set("log-level", "LOG_LEVEL", flags.logLevel)
	set("log-format", "LOG_FORMAT", flags.logFormat)

	var cfg appConfig
	err := config.Load(&cfg,
		config.WithPrefix(envPrefix),
		config.WithEnvFiles(flags.envFiles...),
		config.WithOverlay(overlay),
	)
	return cfg, err
}

func newLogger(cfg appConfig) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format := logger.Format(cfg.LogFormat)
	if format != logger.FormatJSON && format != logger.FormatText {
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithAttr(logger.Component("featurectl")),
	), nil
}

// setup builds the logger, opens the configured source and creates a provider.
// The caller must Close the returned provider.
func setup(ctx context.Context, cmd *cobra.Command, flags *globalFlags, overlay map[string]string) (*app, error) {
	cfg, err := loadConfig(cmd, flags, overlay)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	fetcher, err := evalsource.Open(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", cfg.Source.Source, err)
	}
	log.DebugContext(ctx, "evaluation source opened", logger.Source(cfg.Source.Source))

	return &app{
		cfg:      cfg,
		logger:   log,
		fetcher:  fetcher,
		provider: feature.NewProvider(fetcher, feature.WithLogger(log)),
	}, nil
}
