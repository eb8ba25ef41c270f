// Command importevents fills the event import workbook template with the
// comments stored in the loader's record tables.
//
// By default the loader pipeline runs first so the tables are current; pass
// -skip-load to use the tables already on disk.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/commentloader/internal/config"
	"github.com/JonMunkholm/commentloader/internal/events"
	"github.com/JonMunkholm/commentloader/internal/logging"
	"github.com/JonMunkholm/commentloader/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	skipLoad := flag.Bool("skip-load", false, "use existing record tables instead of rebuilding them")
	flag.Parse()

	envPath, err := config.LoadDotEnv()
	if err != nil {
		slog.Error("failed to load .env file", "path", envPath, "error", err)
		return 1
	}

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
	logger.Debug("configuration loaded", "config", cfg.String())

	// 1. Rebuild the record tables
	if !*skipLoad {
		pipeline.Run(logging.NewContext(ctx, logger.With("stage", "load")), pipeline.Sources(cfg))
	}

	// 2. Locate the template
	templatePath, err := pipeline.FirstFile(cfg.Events.TemplateDir)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoFile) {
			logger.Error("the template file was not found; add it to the template directory and restart", "dir", cfg.Events.TemplateDir)
		} else {
			logger.Error("the template directory was not found", "dir", cfg.Events.TemplateDir, "error", err)
		}
		return 1
	}
	logger.Debug("template location", "path", templatePath)

	noise, err := events.NewNoiseFilter(cfg.Events.NoisePatterns, cfg.Events.CaseInsensitive, cfg.Events.Match)
	if err != nil {
		logger.Error("invalid noise patterns", "error", err)
		return 1
	}

	// 3. Fill the workbook
	stats, err := events.Import(ctx, events.Options{
		TemplatePath:     templatePath,
		OutputDir:        cfg.Events.OutputDir,
		Sheet:            cfg.Events.Sheet,
		ToyopucTable:     cfg.Toyopuc.OutputPath,
		ScreenWorksTable: cfg.ScreenWorks.OutputPath,
		Noise:            noise,
		Bypass:           cfg.Events.Bypass,
	})
	if err != nil {
		if errors.Is(err, events.ErrNoTables) {
			logger.Error("No comment files were found. Please provide comment files and try again.")
		} else {
			logger.Error("import failed", "error", err)
		}
		return 1
	}

	// 4. Report
	logger.Info("import complete",
		"output", stats.Output,
		"addresses", stats.Rows,
		"toyopuc_matches", stats.Toyopuc,
		"screenworks_matches", stats.ScreenWorks,
	)
	if stats.Matched() == 0 {
		logger.Warn("No matches were found. Make sure your input and template files are correct.")
	}
	return 0
}
