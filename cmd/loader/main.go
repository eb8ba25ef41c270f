// Command loader builds the ScreenWorks and Toyopuc record tables from the
// first export found in each configured directory.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/commentloader/internal/config"
	"github.com/JonMunkholm/commentloader/internal/logging"
	"github.com/JonMunkholm/commentloader/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists (overwrites existing env vars)
	envPath, err := config.LoadDotEnv()
	if err != nil {
		slog.Error("failed to load .env file", "path", envPath, "error", err)
		return 1
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	logger, closeLog, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, logging.FileOptions{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, logger = logging.WithRunID(ctx, logger)

	if envPath != "" {
		logger.Debug("loaded .env file", "path", envPath)
	}
	if wd, err := os.Getwd(); err == nil {
		logger.Debug("working directory", "path", wd)
	}
	logger.Debug("configuration loaded", "config", cfg.String())

	// A source without files is not an error; the report is logged by Run
	pipeline.Run(ctx, pipeline.Sources(cfg))
	return 0
}
