package compress

import (
	"fmt"
	"io"

	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
)

// Compressor compresses a complete block payload.
type Compressor interface {
	// Compress compresses data and returns the result.
	//
	// The returned slice is owned by the caller, except for the no-op codec
	// which returns data itself. data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a block payload compressed by the matching Compressor.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data and returns the original payload.
	//
	// Corrupted input or input produced by another algorithm returns an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a new Codec for the given compression type.
//
// target describes what the codec is used for and only appears in errors.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(DefaultZlibLevel), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionXZ:
		return NewXZCompressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression %s: %w", target, compressionType, errs.ErrInvalidCompression)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZlib: NewZlibCompressor(DefaultZlibLevel),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionXZ:   NewXZCompressor(),
}

// GetCodec retrieves the shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type %s: %w", compressionType, errs.ErrInvalidCompression)
}

// SizedDecompressor is implemented by codecs that can stop decoding once the
// output exceeds a known size.
//
// DecompressSize returns at most size+1 bytes, so a payload declaring a small
// decoded size cannot inflate beyond it.
type SizedDecompressor interface {
	DecompressSize(data []byte, size int) ([]byte, error)
}

// DecompressTo decompresses data with codec and checks the result is exactly
// rawSize bytes long.
//
// Codecs implementing SizedDecompressor never allocate much more than rawSize,
// whatever the compressed data claims.
func DecompressTo(codec Decompressor, data []byte, rawSize int) ([]byte, error) {
	if rawSize < 0 {
		return nil, fmt.Errorf("negative decoded size %d: %w", rawSize, errs.ErrInvalidPayload)
	}

	var (
		out []byte
		err error
	)

	if sized, ok := codec.(SizedDecompressor); ok {
		out, err = sized.DecompressSize(data, rawSize)
	} else {
		out, err = codec.Decompress(data)
	}

	if err != nil {
		return nil, err
	}

	if len(out) != rawSize {
		return nil, fmt.Errorf("decompressed %d bytes, want %d: %w", len(out), rawSize, errs.ErrInvalidPayload)
	}

	return out, nil
}

// readLimited reads r until EOF or until more than size bytes were produced.
func readLimited(r io.Reader, size int) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, int64(size)+1))
}
