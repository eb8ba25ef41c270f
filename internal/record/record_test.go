package record

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"shorter is padded", "EM1A0", 8, "EM1A0   "},
		{"exact width untouched", "ABCD", 4, "ABCD"},
		{"longer is truncated", "ABCDEFGH", 3, "ABC"},
		{"empty input", "", 4, "    "},
		{"zero width", "ABC", 0, ""},
		{"negative width", "ABC", -5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pack(tt.input, tt.width)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestPack_LengthAlwaysWidth(t *testing.T) {
	inputs := []string{"", "a", strings.Repeat("x", 63), strings.Repeat("x", 64), strings.Repeat("x", 500), "異常PL1/FAULT"}
	for _, in := range inputs {
		for _, w := range []int{0, 1, 7, AddressWidth, CommentWidth, 200} {
			got := Pack(in, w)
			require.Len(t, got, w, "input %q width %d", in, w)

			if len(in) <= w {
				assert.True(t, bytes.HasPrefix(got, []byte(in)))
				assert.Equal(t, strings.Repeat(" ", w-len(in)), string(got[len(in):]))
			} else {
				assert.Equal(t, in[:w], string(got))
			}
		}
	}
}

func TestPack_SplitsMultiByteCharacter(t *testing.T) {
	// "異" is 3 bytes; a 2-byte slot keeps only its first two bytes.
	got := Pack("異", 2)
	assert.Equal(t, []byte("異")[:2], got)
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input Field
		want  string
	}{
		{"separator cut", Text(`GMF900\SYS1`), "GMF900"},
		{"surrounding whitespace", Text("  EM1A0 \t"), "EM1A0"},
		{"space before separator", Text(`GMF900 \SYS1`), "GMF900"},
		{"leading separator", Text(`\SYS1`), ""},
		{"no separator", Text("P1-M0010"), "P1-M0010"},
		{"absent field", Field{}, MissingAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAddress(tt.input))
		})
	}
}

func TestNormalizeAddress_Idempotent(t *testing.T) {
	for _, raw := range []string{"GMF900", "  EM1A0  ", "P1-X0001", ""} {
		once := NormalizeAddress(Text(raw))
		assert.Equal(t, once, NormalizeAddress(Text(once)))
	}
}

func TestNormalizeComment(t *testing.T) {
	tests := []struct {
		name  string
		input Field
		want  string
	}{
		{"escaped newline folded", Text(`L/C FAULT\nOPERATOR SIDE`), "L/C FAULT OPERATOR SIDE"},
		{"several escapes", Text(`A\nB\nC`), "A B C"},
		{"trailing escape trimmed", Text(`ENDURANCE\n`), "ENDURANCE"},
		{"real newline is only trimmed", Text("ENDURANCE\n"), "ENDURANCE"},
		{"whitespace", Text("  PART SET FAULT  "), "PART SET FAULT"},
		{"empty", Text(""), ""},
		{"absent field", Field{}, MissingComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeComment(tt.input)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, `\n`)
		})
	}
}

func TestFieldAt(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, Text("b"), FieldAt(row, 1))
	assert.False(t, FieldAt(row, 2).Valid)
	assert.False(t, FieldAt(row, -1).Valid)
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(0, 1, nil)

	rec, ok := e.Extract([]string{`GMF900\SYS1`, `L/C FAULT\nOPERATOR SIDE`, "extra"})
	require.True(t, ok)
	assert.Equal(t, "GMF900", rec.Address())
	assert.Equal(t, "L/C FAULT OPERATOR SIDE", rec.Comment())

	assert.Equal(t, "GMF900"+strings.Repeat(" ", 58), string(rec[:AddressWidth]))
	assert.Equal(t, "L/C FAULT OPERATOR SIDE"+strings.Repeat(" ", 73), string(rec[AddressWidth:]))
}

func TestExtractor_ShortRowSkipped(t *testing.T) {
	tests := []struct {
		name      string
		addr, cmt int
		row       []string
	}{
		{"empty row", 0, 1, nil},
		{"missing comment column", 0, 1, []string{"EM1A0"}},
		{"missing address column", 3, 0, []string{"ENDURANCE", "x", "y"}},
		{"negative index", -1, 0, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(tt.addr, tt.cmt, nil)
			_, ok := e.Extract(tt.row)
			assert.False(t, ok)
		})
	}
}

func TestExtractor_ReversedColumns(t *testing.T) {
	e := NewExtractor(2, 0, nil)
	assert.Equal(t, 3, e.MinFields())

	rec, ok := e.Extract([]string{"ENDURANCE", "", "EM1A0"})
	require.True(t, ok)
	assert.Equal(t, "EM1A0", rec.Address())
	assert.Equal(t, "ENDURANCE", rec.Comment())
}

func TestRecord_LongFieldsTruncated(t *testing.T) {
	rec := New(strings.Repeat("A", 100), strings.Repeat("C", 200))
	assert.Len(t, rec, Size)
	assert.Equal(t, strings.Repeat("A", AddressWidth), rec.Address())
	assert.Equal(t, strings.Repeat("C", CommentWidth), rec.Comment())
}

func TestRecord_CommentDropsSplitCharacter(t *testing.T) {
	// 95 ASCII bytes then a 3-byte character: only one byte of it fits.
	rec := New("X", strings.Repeat("a", 95)+"異")
	assert.Equal(t, strings.Repeat("a", 95), rec.Comment())
}

func TestTable_Bytes(t *testing.T) {
	tbl := Table{New("a", "b"), New("c", "d")}
	assert.Equal(t, 320, tbl.Bytes())
}
