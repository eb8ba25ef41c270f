// Package logging provides structured logging configuration using log/slog.
//
// Loggers are built once in main and passed down explicitly. Every run gets a
// run id so the entries of one loader or import run can be correlated when
// several runs share a log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// FileOptions configures the optional log file. The file is rotated once it
// reaches MaxSizeMB; rotated files get a timestamp in their name and only the
// newest MaxBackups are kept.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// Setup builds the process logger. Entries go to stdout and, when file.Path
// is set, to a rotating log file as well (its directory is created).
// The returned close function releases the file.
func Setup(level, format string, file FileOptions) (*slog.Logger, func() error, error) {
	if file.Path == "" {
		return New(os.Stdout, level, format), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(file.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	rf := newRotatingFile(file)

	return New(io.MultiWriter(os.Stdout, rf), level, format), rf.Close, nil
}

func newRotatingFile(file FileOptions) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    file.MaxSizeMB,
		MaxBackups: file.MaxBackups,
		LocalTime:  true,
	}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRunID tags logger with a fresh run id and stores it in ctx.
//
// Usage:
//
//	ctx, logger = logging.WithRunID(ctx, logger)
//	logger.Info("loader started")
func WithRunID(ctx context.Context, logger *slog.Logger) (context.Context, *slog.Logger) {
	logger = logger.With("run_id", uuid.New().String())
	return NewContext(ctx, logger), logger
}

// FromContext returns the logger stored by NewContext or WithRunID, or
// slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithFields returns the context logger with additional structured fields.
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
