// Package pipeline wires discovery, reading and writing together for each
// configured comment export.
//
// Sources are processed one after another. A failure in one source (missing
// directory, unreadable file, unwritable output) is recorded in its Result
// and never stops the others.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/commentloader/internal/config"
	"github.com/JonMunkholm/commentloader/internal/logging"
	"github.com/JonMunkholm/commentloader/internal/source"
	"github.com/JonMunkholm/commentloader/internal/table"
)

// Source is one export directory and the table file built from it.
type Source struct {
	Name       string
	Dir        string
	OutputPath string
	Options    source.Options
}

// Sources builds the ScreenWorks (UTF-16LE) and Toyopuc (UTF-8) sources from
// configuration, converting 1-based columns to 0-based indices.
func Sources(cfg *config.Config) []Source {
	build := func(name string, enc source.Encoding, sc config.SourceConfig) Source {
		return Source{
			Name:       name,
			Dir:        sc.CSVDir,
			OutputPath: sc.OutputPath,
			Options: source.Options{
				Name:         name,
				Encoding:     enc,
				AddrIndex:    sc.AddrIndex(),
				CommentIndex: sc.CommentIndex(),
				HasHeader:    sc.HasHeader,
				LazyQuotes:   sc.LazyQuotes,
			},
		}
	}

	return []Source{
		build("ScreenWorks", source.EncodingUTF16LE, cfg.ScreenWorks),
		build("Toyopuc", source.EncodingUTF8, cfg.Toyopuc),
	}
}

// Outcome classifies what happened to one source.
type Outcome int

const (
	// Written means the table file was created.
	Written Outcome = iota
	// NoFile means the directory had no source file; nothing was written.
	NoFile
	// Failed means the source could not be read or the output not created.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case NoFile:
		return "no file"
	default:
		return "failed"
	}
}

// Result describes one source after a run.
type Result struct {
	Source  string
	Input   string
	Output  string
	Outcome Outcome
	Records int
	Write   table.WriteResult
	Err     error
}

// Report is the outcome of a full run.
type Report struct {
	Results []Result
	Elapsed time.Duration
}

// WrittenFiles lists the output paths that were written, in source order.
func (r Report) WrittenFiles() []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome == Written {
			out = append(out, res.Output)
		}
	}
	return out
}

// Summary phrases the run outcome for the final log line.
func (r Report) Summary() string {
	files := r.WrittenFiles()
	if len(files) == 0 {
		return "No files wrote. Something might be wrong."
	}
	return fmt.Sprintf("Wrote %s file.", strings.Join(files, " file and "))
}

/* ----------------------------------------
	Main entry for a loader run
---------------------------------------- */

// Run processes every source and returns what happened to each.
// Log entries go to the logger carried by ctx (see logging.NewContext).
func Run(ctx context.Context, sources []Source) Report {
	start := time.Now()
	logger := logging.FromContext(ctx)

	// 1. Clear tables from the previous run
	for _, src := range sources {
		removeStale(src.OutputPath, logger)
	}

	// 2. Discover, read and write each source in turn
	report := Report{Results: make([]Result, 0, len(sources))}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", "error", err)
			break
		}
		report.Results = append(report.Results, runSource(ctx, src))
	}

	// 3. Summarize
	report.Elapsed = time.Since(start)
	logger.Info(report.Summary())
	logger.Info("execution time", "elapsed", report.Elapsed.Round(10*time.Microsecond).String())

	return report
}

func runSource(ctx context.Context, src Source) Result {
	res := Result{Source: src.Name, Output: src.OutputPath}
	logger := logging.WithFields(ctx, "source", src.Name)

	input, err := FirstFile(src.Dir)
	if err != nil {
		res.Outcome, res.Err = NoFile, err
		if errors.Is(err, ErrNoFile) {
			logger.Info(src.Name+" csv doesn't exist.", "dir", src.Dir)
		} else {
			logger.Error("cannot list source directory", "dir", src.Dir, "error", err)
		}
		return res
	}
	res.Input = input

	// Read tags its own entries with the source name
	opts := src.Options
	opts.Logger = logging.FromContext(ctx)
	records, err := source.ReadFile(ctx, input, opts)
	if err != nil {
		res.Outcome, res.Err = Failed, err
		var openErr *source.OpenError
		if errors.As(err, &openErr) {
			logger.Error("there was a problem opening the csv file", "path", openErr.Path, "error", openErr.Err)
		} else {
			logger.Error("failed to read source", "path", input, "error", err)
		}
		return res
	}
	res.Records = len(records)

	if dir := filepath.Dir(src.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			res.Outcome, res.Err = Failed, fmt.Errorf("create output directory: %w", err)
			logger.Error("failed to create output directory", "dir", dir, "error", err)
			return res
		}
	}

	logger.Debug("writing table", "path", src.OutputPath, "records", len(records), "bytes", records.Bytes())
	wr, err := table.WriteFile(src.OutputPath, records, logger)
	res.Write = wr
	if err != nil {
		res.Outcome, res.Err = Failed, err
		return res
	}
	if wr.Failed > 0 {
		logger.Warn("some records were not written", "failed", wr.Failed, "written", wr.Written)
	}

	res.Outcome = Written
	logger.Debug("table written", "path", src.OutputPath, "records", wr.Written)
	return res
}
