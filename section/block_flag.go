package section

import (
	"github.com/schottky-tools/tdfx/endian"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
)

// BlockFlag is the packed option/encoding part of a block header.
type BlockFlag struct {
	// Options packs the byte order and the magic number.
	// Bit 0 is the endianness flag, 0 means big-endian, 1 means little-endian.
	// Bit 1-3 are reserved and must be 0.
	// Bit 4-15 hold the magic number 0xBD10.
	//
	// Options itself is always stored big-endian so it can be read before the
	// block's byte order is known.
	Options uint16

	// ValueType is the element type of numeric columns in the payload.
	ValueType format.ValueType
	// Compression is the codec applied to the payload.
	Compression format.CompressionType
}

// NewBlockFlag creates a big-endian, uncompressed flag for float64 columns.
func NewBlockFlag() BlockFlag {
	return BlockFlag{
		Options:     MagicBDIOV1Opt,
		ValueType:   format.TypeFloat64,
		Compression: format.CompressionNone,
	}
}

// IsLittleEndian returns whether the block is little-endian.
func (f BlockFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// IsBigEndian returns whether the block is big-endian.
func (f BlockFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// WithLittleEndian sets little-endian byte order.
func (f *BlockFlag) WithLittleEndian() {
	f.Options |= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *BlockFlag) WithBigEndian() {
	f.Options &^= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f BlockFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f BlockFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicBDIOV1Opt
}

// Validate checks the magic number, reserved bits, value type and compression.
func (f BlockFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagic
	}

	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if _, ok := validValueTypes[f.ValueType]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	if _, ok := validCompressions[f.Compression]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the engine matching the flag's byte order.
func (f BlockFlag) GetEndianEngine() endian.EndianEngine {
	return endian.GetEngine(f.IsLittleEndian())
}
