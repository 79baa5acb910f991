package compress

// ZstdCompressor compresses payloads as Zstandard frames.
//
// The implementation is selected at build time: the pure Go klauspost/compress
// codec by default, valyala/gozstd when built with cgo and the gozstd tag.
// Both produce standard frames and can read each other's output.
type ZstdCompressor struct{}

var (
	_ Codec             = (*ZstdCompressor)(nil)
	_ SizedDecompressor = (*ZstdCompressor)(nil)
)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
