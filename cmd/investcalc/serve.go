package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rpgo/investment-calculator/internal/cache"
	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/config"
	"github.com/rpgo/investment-calculator/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var settingsPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Long: `serve starts the JSON API. Settings come from the optional --config file
and INVESTCALC_* environment variables (for example INVESTCALC_LISTEN_ADDR,
INVESTCALC_CACHE_BACKEND=redis, INVESTCALC_CACHE_REDIS_ADDR).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}
			logger, err := serviceLogger(root, settings.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, settings, logger)
		},
	}
	cmd.Flags().StringVarP(&settingsPath, "config", "c", "", "service settings file (yaml, json or toml)")
	return cmd
}

// serviceLogger honors --verbose, otherwise the configured log level.
func serviceLogger(root *rootOptions, level string) (*zap.Logger, error) {
	if root.verbose {
		return root.logger, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func serve(ctx context.Context, settings *config.Settings, logger *zap.Logger) error {
	store, err := cache.New(ctx, settings.Cache, logger.Named("cache"))
	if err != nil {
		return err
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(calculation.NewZapLogger(logger))

	handlers := server.NewHandlers(engine, cache.NewProjections(store, logger.Named("cache")), logger)
	return server.New(settings, handlers, logger.Named("http")).Run(ctx)
}
