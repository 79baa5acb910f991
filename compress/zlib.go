package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DefaultZlibLevel is the medium level used for block payloads, the same
// level the ROOT writer uses for its output file.
const DefaultZlibLevel = 4

// ZlibCompressor compresses payloads as RFC 1950 zlib streams.
type ZlibCompressor struct {
	level int
}

var (
	_ Codec             = (*ZlibCompressor)(nil)
	_ SizedDecompressor = (*ZlibCompressor)(nil)
)

// NewZlibCompressor creates a zlib codec with the given level (0-9, or -1 for
// the library default).
func NewZlibCompressor(level int) ZlibCompressor {
	return ZlibCompressor{level: level}
}

// Level returns the compression level.
func (c ZlibCompressor) Level() int {
	return c.level
}

// Compress compresses data into a zlib stream.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream, verifying its Adler-32 trailer.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	return out, nil
}

// DecompressSize inflates a zlib stream, reading at most size+1 bytes of
// output.
func (c ZlibCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	defer r.Close()

	out, err := readLimited(r, size)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	return out, nil
}
