package buffer

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// decompressIfNeeded reads f fully through the decoder matching path's
// extension, or returns ("", false) when path carries no recognized
// compression suffix — the caller then takes the mmap-or-read-full path
// on the original file instead. Compressed sources are always read fully:
// none of the stdlib or zstd decoders expose a mappable random-access
// view, so the mmap threshold never applies to them.
func decompressIfNeeded(path string, f *os.File) ([]byte, bool, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			return nil, true, err
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		return data, true, err

	case strings.HasSuffix(lower, ".bz2"):
		data, err := io.ReadAll(bzip2.NewReader(f))
		return data, true, err

	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, true, err
		}
		defer dec.Close()
		data, err := io.ReadAll(dec)
		return data, true, err

	default:
		return nil, false, nil
	}
}
