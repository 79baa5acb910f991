package section

import (
	"math"

	"github.com/schottky-tools/tdfx/format"
)

const (
	// Bit masks of the Options field.
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0), 0=big, 1=little
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicBDIOV1Opt is the version 1 magic number carried by every block header.
	MagicBDIOV1Opt = 0xBD10
)

// offsets and sizes of the fixed sections in a BDIO stream
const (
	HeaderSize            = 24             // fixed block header size in bytes
	DirectoryEntrySize    = 16             // fixed directory entry size in bytes
	DirectoryCountSize    = 4              // uint32 entry count leading the directory payload
	MaxPayloadSize        = math.MaxUint32 // largest payload length the header can describe
	DefaultMaxPayloadSize = 256 << 20      // default allocation guard used by readers
)

var (
	validValueTypes = map[format.ValueType]struct{}{
		format.TypeNone:    {},
		format.TypeFloat64: {},
		format.TypeFloat32: {},
		format.TypeInt32:   {},
		format.TypeInt16:   {},
	}

	validCompressions = map[format.CompressionType]struct{}{
		format.CompressionNone: {},
		format.CompressionZlib: {},
		format.CompressionZstd: {},
		format.CompressionS2:   {},
		format.CompressionLZ4:  {},
		format.CompressionXZ:   {},
	}
)
