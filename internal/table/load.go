package table

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/JonMunkholm/commentloader/internal/record"
)

// Load maps a record table file into memory and returns its address to
// comment pairs. Records with a blank address are ignored; when an address
// repeats, the later record wins. A trailing partial record is decoded from
// the bytes that are present.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat table: %w", err)
	}
	if info.Size() == 0 {
		return map[string]string{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap table %s: %w", path, err)
	}
	defer m.Unmap()

	return decode(m), nil
}

func decode(data []byte) map[string]string {
	out := make(map[string]string, len(data)/record.Size)
	for off := 0; off < len(data); off += record.Size {
		rec := record.New("", "")
		copy(rec[:], data[off:min(off+record.Size, len(data))])

		addr := rec.Address()
		if addr == "" {
			continue
		}
		out[addr] = rec.Comment()
	}
	return out
}
