package source

// streaming.go holds the io.Reader wrappers applied before CSV parsing:
//
//   - skipBOM: drops a leading UTF-8 BOM (0xEF 0xBB 0xBF) left by Windows tools
//   - utf16Reader: reframes a UTF-16LE stream as UTF-8
//   - countingReader: tracks bytes consumed for the end-of-read log line

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader positioned after the UTF-8 BOM, if r starts with
// one. Streams shorter than a BOM are passed through unchanged.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf16Reader decodes the whole stream as UTF-16 little-endian. A BOM, if
// present, is honoured and removed; unpaired surrogates become U+FFFD.
func utf16Reader(r io.Reader) io.Reader {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	return transform.NewReader(r, dec)
}

// countingReader counts bytes read through it.
type countingReader struct {
	reader    io.Reader
	BytesRead int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}
