package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNoFile is returned by FirstFile when a directory holds no regular file.
var ErrNoFile = errors.New("no file found")

// FirstFile returns the first regular file in dir, in directory listing
// order (sorted by name). Subdirectories are not searched.
func FirstFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks so a link to a file counts as a file
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return path, nil
	}

	return "", fmt.Errorf("%s: %w", dir, ErrNoFile)
}

// removeStale deletes an existing output file so that a source skipped on
// this run does not leave the previous run's table behind.
func removeStale(path string, logger *slog.Logger) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Info("failed to delete stale output", "path", path, "error", err)
		return
	}
	logger.Debug("deleted stale output", "path", path)
}
