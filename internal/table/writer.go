// Package table reads and writes record table files: flat concatenations of
// fixed-size records with no header, delimiter or length prefix.
package table

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/commentloader/internal/record"
)

// WriteResult counts what a write actually put on disk.
type WriteResult struct {
	Written int
	Failed  int
}

// WriteFile creates (or truncates) path and writes every record back to back
// in table order. An error is returned only when the file cannot be created.
// A record that fails to write is logged, counted in Failed and skipped; the
// remaining records are still attempted.
func WriteFile(path string, records record.Table, logger *slog.Logger) (WriteResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f, err := os.Create(path)
	if err != nil {
		logger.Error("failed to create output file", "path", path, "error", err)
		return WriteResult{}, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Error("failed to close output file", "path", path, "error", cerr)
		}
	}()

	res := writeRecords(f, records, logger.With("path", path))
	return res, nil
}

// writeRecords writes unbuffered so that a failure is attributed to the
// record that caused it.
func writeRecords(w io.Writer, records record.Table, logger *slog.Logger) WriteResult {
	var res WriteResult
	for i := range records {
		if _, err := w.Write(records[i][:]); err != nil {
			logger.Error("failed to write record", "index", i, "error", err)
			res.Failed++
			continue
		}
		res.Written++
	}
	return res
}
