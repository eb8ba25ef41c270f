package record

import "strings"

// escapedNewline is the two-character sequence backslash + 'n' as it appears
// in exported comment text. It is not a control character.
const escapedNewline = `\n`

// Field is one raw cell. Valid is false when the row had no such column.
type Field struct {
	Value string
	Valid bool
}

// Text returns a present field holding s.
func Text(s string) Field {
	return Field{Value: s, Valid: true}
}

// FieldAt returns the cell at index i, or an invalid Field when the row is
// too short or i is negative.
func FieldAt(row []string, i int) Field {
	if i < 0 || i >= len(row) {
		return Field{}
	}
	return Text(row[i])
}

// NormalizeAddress trims the raw address and cuts it at the first
// backslash, e.g. `GMF900\SYS1` becomes "GMF900".
func NormalizeAddress(f Field) string {
	if !f.Valid {
		return MissingAddress
	}
	s := strings.TrimSpace(f.Value)
	if i := strings.IndexByte(s, '\\'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// NormalizeComment folds literal `\n` escapes into single spaces and trims
// the result.
func NormalizeComment(f Field) string {
	s := MissingComment
	if f.Valid {
		s = f.Value
	}
	s = strings.ReplaceAll(s, escapedNewline, " ")
	return strings.TrimSpace(s)
}
