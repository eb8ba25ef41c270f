package record

import "log/slog"

// Extractor turns raw rows into records using fixed 0-based column indices.
type Extractor struct {
	AddrIndex    int
	CommentIndex int

	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil logger discards row traces.
func NewExtractor(addrIndex, commentIndex int, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		AddrIndex:    addrIndex,
		CommentIndex: commentIndex,
		logger:       logger,
	}
}

// MinFields is the number of fields a row needs to reach both columns.
func (e *Extractor) MinFields() int {
	return max(e.AddrIndex, e.CommentIndex) + 1
}

// Extract normalizes and packs one row. ok is false when the row is skipped:
// it is too short to reach both columns or its address cannot be read.
// A missing comment still yields a record carrying MissingComment.
func (e *Extractor) Extract(row []string) (rec Record, ok bool) {
	if e.AddrIndex < 0 || e.CommentIndex < 0 || len(row) < e.MinFields() {
		e.logger.Debug("skipping malformed or short row",
			"fields", len(row),
			"want", e.MinFields(),
			"row", row,
		)
		return rec, false
	}

	addr := FieldAt(row, e.AddrIndex)
	if !addr.Valid {
		e.logger.Debug("skipping row without address", "row", row)
		return rec, false
	}

	address := NormalizeAddress(addr)
	comment := NormalizeComment(FieldAt(row, e.CommentIndex))

	e.logger.Debug("extracted", "address", address, "comment", comment)

	return New(address, comment), true
}
