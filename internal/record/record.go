// Package record defines the fixed-width address/comment record shared by the
// loader and every downstream consumer of its output files.
//
// A record is exactly [Size] bytes: a [AddressWidth]-byte address slot
// followed by a [CommentWidth]-byte comment slot. Both slots hold the
// canonical text left-justified and padded with ASCII spaces. Files are a
// flat concatenation of records with no header, so consumers must know the
// layout in advance.
package record

import (
	"strings"
	"unicode/utf8"
)

const (
	AddressWidth = 64
	CommentWidth = 96
	Size         = AddressWidth + CommentWidth
)

// Sentinels substituted for unreadable fields. Downstream tools match on
// these literal values.
const (
	MissingAddress = "XXXXX"
	MissingComment = "Not found"
)

// Record is one packed address/comment pair.
type Record [Size]byte

// Table is an ordered sequence of records in source row order.
// Duplicate addresses are kept.
type Table []Record

// New packs an already-canonical address and comment into a record.
func New(address, comment string) Record {
	var r Record
	PackInto(r[:AddressWidth], address)
	PackInto(r[AddressWidth:], comment)
	return r
}

// Address returns the address slot with padding removed.
func (r *Record) Address() string {
	return slotText(r[:AddressWidth])
}

// Comment returns the comment slot with padding removed.
func (r *Record) Comment() string {
	return slotText(r[AddressWidth:])
}

// slotText decodes a slot, dropping bytes that are not valid UTF-8 (a
// multi-byte character may have been split at the slot boundary).
func slotText(b []byte) string {
	s := string(b)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.TrimSpace(s)
}

// Bytes returns the total encoded size of the table.
func (t Table) Bytes() int {
	return len(t) * Size
}
