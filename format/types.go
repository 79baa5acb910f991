package format

type (
	BlockTag        uint16
	ValueType       uint8
	CompressionType uint8
)

const (
	TagDirectory BlockTag = 0x0001 // TagDirectory marks the block directory.
	TagXYCurve   BlockTag = 0x0010 // TagXYCurve marks a block holding parallel x/y sample columns.
	TagText      BlockTag = 0x0020 // TagText marks a free-form UTF-8 text block.
	TagParameter BlockTag = 0x0030 // TagParameter marks a block of named float64 parameters.

	TypeNone    ValueType = 0x0 // TypeNone is used by blocks without numeric columns.
	TypeFloat64 ValueType = 0x1 // TypeFloat64 represents IEEE 754 double precision values.
	TypeFloat32 ValueType = 0x2 // TypeFloat32 represents IEEE 754 single precision values.
	TypeInt32   ValueType = 0x3 // TypeInt32 represents signed 32-bit integers.
	TypeInt16   ValueType = 0x4 // TypeInt16 represents signed 16-bit integers.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZlib CompressionType = 0x2 // CompressionZlib represents zlib (RFC 1950) compression.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 block compression.
	CompressionXZ   CompressionType = 0x6 // CompressionXZ represents xz (LZMA2) stream compression.
)

func (t BlockTag) String() string {
	switch t {
	case TagDirectory:
		return "Directory"
	case TagXYCurve:
		return "XYCurve"
	case TagText:
		return "Text"
	case TagParameter:
		return "Parameter"
	default:
		return "Unknown"
	}
}

// Size returns the encoded width of a single value in bytes, or 0 for TypeNone
// and unknown types.
func (v ValueType) Size() int {
	switch v {
	case TypeFloat64:
		return 8
	case TypeFloat32, TypeInt32:
		return 4
	case TypeInt16:
		return 2
	default:
		return 0
	}
}

func (v ValueType) String() string {
	switch v {
	case TypeNone:
		return "None"
	case TypeFloat64:
		return "Float64"
	case TypeFloat32:
		return "Float32"
	case TypeInt32:
		return "Int32"
	case TypeInt16:
		return "Int16"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionXZ:
		return "XZ"
	default:
		return "Unknown"
	}
}
