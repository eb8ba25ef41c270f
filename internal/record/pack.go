package record

// Pack returns s as exactly width bytes: truncated on the right if longer,
// padded with ASCII spaces if shorter. Truncation is byte-level, so a
// multi-byte character can be split at the boundary.
func Pack(s string, width int) []byte {
	if width < 0 {
		width = 0
	}
	out := make([]byte, width)
	PackInto(out, s)
	return out
}

// PackInto fills dst with s using the same rules as Pack, with len(dst) as
// the width.
func PackInto(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}
