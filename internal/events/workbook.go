package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/commentloader/internal/logging"
	"github.com/JonMunkholm/commentloader/internal/table"
)

// Template layout: addresses sit in column B from row 3 down; matches are
// written to columns F (address) and G (comment) of the same row.
const (
	firstDataRow  = 3
	addressColumn = 2
	outAddressCol = 6
	outCommentCol = 7
)

// ErrNoTables is returned when neither record table file exists.
var ErrNoTables = errors.New("no comment files were found")

// Options configures one import run.
type Options struct {
	TemplatePath string
	OutputDir    string
	Sheet        string

	ToyopucTable     string
	ScreenWorksTable string

	Noise  *NoiseFilter
	Bypass bool
}

// Stats counts matched rows per table.
type Stats struct {
	Output      string
	Rows        int
	Toyopuc     int
	ScreenWorks int
}

// Matched is the total number of rows that received a comment.
func (s Stats) Matched() int { return s.Toyopuc + s.ScreenWorks }

// Import loads the record tables, fills a copy of the template named
// out_<template> in OutputDir and saves it. Progress is logged to the logger
// carried by ctx.
func Import(ctx context.Context, opts Options) (Stats, error) {
	logger := logging.WithFields(ctx, "template", filepath.Base(opts.TemplatePath))
	stats := Stats{Output: filepath.Join(opts.OutputDir, "out_"+filepath.Base(opts.TemplatePath))}

	// 1. Load whichever tables exist
	tables, err := loadTables(opts, logger)
	if err != nil {
		return stats, err
	}

	// 2. Open the template
	f, err := excelize.OpenFile(opts.TemplatePath)
	if err != nil {
		return stats, fmt.Errorf("open template %s: %w", opts.TemplatePath, err)
	}
	defer f.Close()

	rows, err := f.GetRows(opts.Sheet)
	if err != nil {
		return stats, fmt.Errorf("read sheet %q: %w", opts.Sheet, err)
	}

	// 3. Resolve every address row
	m := &Matcher{Tables: tables, Noise: opts.Noise, Bypass: opts.Bypass}
	for i := firstDataRow - 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("import cancelled at row %d: %w", i+1, err)
		}

		row := rows[i]
		if len(row) < addressColumn || row[addressColumn-1] == "" {
			continue
		}
		stats.Rows++

		address := row[addressColumn-1]
		match, ok := m.Lookup(address)
		if !ok {
			logger.Debug("no comment", "address", address)
			continue
		}

		if err := writeMatch(f, opts.Sheet, i+1, address, match.Comment); err != nil {
			return stats, err
		}
		logger.Debug("comment matched", "address", address, "from", match.From, "comment", match.Comment)

		switch match.From {
		case FromToyopuc:
			stats.Toyopuc++
		case FromScreenWorks:
			stats.ScreenWorks++
		}
	}

	// 4. Save the filled copy
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(stats.Output); err != nil {
		return stats, fmt.Errorf("save %s: %w", stats.Output, err)
	}
	logger.Info("successfully wrote workbook", "path", stats.Output)

	return stats, nil
}

func writeMatch(f *excelize.File, sheet string, row int, address, comment string) error {
	addrCell, err := excelize.CoordinatesToCellName(outAddressCol, row)
	if err != nil {
		return err
	}
	commentCell, err := excelize.CoordinatesToCellName(outCommentCol, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, addrCell, address); err != nil {
		return fmt.Errorf("write %s: %w", addrCell, err)
	}
	if err := f.SetCellValue(sheet, commentCell, comment); err != nil {
		return fmt.Errorf("write %s: %w", commentCell, err)
	}
	return nil
}

func loadTables(opts Options, logger *slog.Logger) (Tables, error) {
	var tables Tables

	load := func(name, path string) map[string]string {
		if path == "" {
			return nil
		}
		m, err := table.Load(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn(name+" binary file not found.", "path", path)
			} else {
				logger.Error("failed to load table", "table", name, "path", path, "error", err)
			}
			return nil
		}
		logger.Info(name+" binary file found.", "path", path, "addresses", len(m))
		return m
	}

	tables.Toyopuc = load(FromToyopuc, opts.ToyopucTable)
	tables.ScreenWorks = load(FromScreenWorks, opts.ScreenWorksTable)

	if tables.Toyopuc == nil && tables.ScreenWorks == nil {
		return tables, ErrNoTables
	}
	return tables, nil
}
