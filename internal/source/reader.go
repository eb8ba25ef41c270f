// Package source reads the ScreenWorks and Toyopuc comment exports and turns
// their rows into packed records.
//
// Both exports are delimited text with a loose column count. They differ only
// in encoding: ScreenWorks writes UTF-16LE, Toyopuc writes UTF-8/ASCII. The
// UTF-16LE stream is reframed to UTF-8 as a whole before any row parsing.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/JonMunkholm/commentloader/internal/record"
)

// ContextCheckInterval is how often (in rows) to check for context cancellation.
var ContextCheckInterval = 100

// Encoding identifies how a source file is framed on disk.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16LE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF16LE:
		return "utf-16le"
	default:
		return "utf-8"
	}
}

// Options configures one read.
type Options struct {
	// Name labels log entries, e.g. "ScreenWorks".
	Name string

	Encoding Encoding

	// AddrIndex and CommentIndex are 0-based column positions.
	AddrIndex    int
	CommentIndex int

	// HasHeader drops the first parsed row.
	HasHeader bool

	// LazyQuotes lets quotes appear in unquoted fields and non-doubled
	// quotes in quoted fields instead of failing the row.
	LazyQuotes bool

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return l.With("source", o.Name, "encoding", o.Encoding.String())
}

// OpenError reports that a source file could not be opened. It is fatal for
// that source only.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open source file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ReadFile opens path and reads it with Read.
func ReadFile(ctx context.Context, path string, opts Options) (record.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	return read(ctx, f, opts, opts.logger().With("path", path))
}

// Read decodes r, parses it as CSV and extracts one record per usable row.
// Rows that fail to parse (including fields that are not valid UTF-8), are
// too short, or have no address are logged and skipped. The returned table
// keeps source row order.
func Read(ctx context.Context, r io.Reader, opts Options) (record.Table, error) {
	return read(ctx, r, opts, opts.logger())
}

func read(ctx context.Context, r io.Reader, opts Options, logger *slog.Logger) (record.Table, error) {
	counter := &countingReader{reader: r}

	var decoded io.Reader
	switch opts.Encoding {
	case EncodingUTF16LE:
		decoded = utf16Reader(counter)
	default:
		decoded = skipBOM(counter)
	}

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1 // rows may have any number of fields
	cr.LazyQuotes = opts.LazyQuotes

	extractor := record.NewExtractor(opts.AddrIndex, opts.CommentIndex, logger)

	var (
		records    record.Table
		rows       int
		skipped    int
		headerDone bool
	)

	for i := 0; ; i++ {
		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("read cancelled after %d rows: %w", rows, err)
			}
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}

		// The header is the first physical line, even when it fails to parse
		header := opts.HasHeader && !headerDone
		headerDone = true

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.Debug("error reading this line", "line", parseErr.StartLine, "error", err)
				skipped++
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}

		rows++
		if header {
			logger.Debug("skipping header row", "row", row)
			continue
		}

		if !validUTF8(row) {
			line, _ := cr.FieldPos(0)
			logger.Debug("error reading this line", "line", line, "error", "invalid UTF-8")
			skipped++
			continue
		}

		rec, ok := extractor.Extract(row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	logger.Info(Summary(len(records)),
		"count", len(records),
		"rows", rows,
		"skipped", skipped,
		"bytes", counter.BytesRead,
	)

	return records, nil
}

func validUTF8(row []string) bool {
	for _, field := range row {
		if !utf8.ValidString(field) {
			return false
		}
	}
	return true
}

// Summary phrases a record count for the log.
func Summary(n int) string {
	switch {
	case n > 1:
		return fmt.Sprintf("%d comments found", n)
	case n == 1:
		return "1 comment found"
	default:
		return "No comments found"
	}
}
