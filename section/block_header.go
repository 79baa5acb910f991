package section

import (
	"github.com/schottky-tools/tdfx/endian"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
)

// BlockHeader is the fixed-size header in front of every block payload.
type BlockHeader struct {
	// Flag holds options, value type and compression.
	Flag BlockFlag // byte offset 0-1, 4, 5
	// Tag identifies the block kind.
	Tag format.BlockTag // byte offset 2-3
	// Size is the stored payload length, after compression.
	Size uint32 // byte offset 8-11
	// RawSize is the payload length after decompression.
	RawSize uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the decompressed payload, 0 when not recorded.
	Checksum uint64 // byte offset 16-23
}

// NewBlockHeader creates a header for the given tag with default flags.
func NewBlockHeader(tag format.BlockTag) *BlockHeader {
	return &BlockHeader{
		Flag: NewBlockFlag(),
		Tag:  tag,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 24 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 24 bytes, or flag validation errors
func (h *BlockHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is big-endian regardless of the block byte order.
	h.Flag.Options = uint16(data[0])<<8 | uint16(data[1])
	h.Flag.ValueType = format.ValueType(data[4])
	h.Flag.Compression = format.CompressionType(data[5])

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	if data[6] != 0 || data[7] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	engine := h.Flag.GetEndianEngine()
	h.Tag = format.BlockTag(engine.Uint16(data[2:4]))
	h.Size = engine.Uint32(data[8:12])
	h.RawSize = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return nil
}

// Bytes serializes the header into a new 24-byte slice.
func (h *BlockHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.WriteToSlice(b, 0)

	return b
}

// WriteToSlice writes the header at offset and returns the next position.
func (h *BlockHeader) WriteToSlice(data []byte, offset int) int {
	engine := h.Flag.GetEndianEngine()
	b := data[offset : offset+HeaderSize]

	b[0] = byte(h.Flag.Options >> 8)
	b[1] = byte(h.Flag.Options)
	engine.PutUint16(b[2:4], uint16(h.Tag))
	b[4] = byte(h.Flag.ValueType)
	b[5] = byte(h.Flag.Compression)
	b[6], b[7] = 0, 0
	engine.PutUint32(b[8:12], h.Size)
	engine.PutUint32(b[12:16], h.RawSize)
	engine.PutUint64(b[16:24], h.Checksum)

	return offset + HeaderSize
}

// Engine returns the byte order engine of the block.
func (h *BlockHeader) Engine() endian.EndianEngine {
	return h.Flag.GetEndianEngine()
}

// TotalSize returns the on-disk size of the block including its header.
func (h *BlockHeader) TotalSize() int64 {
	return HeaderSize + int64(h.Size)
}

// ParseBlockHeader parses a BlockHeader from the first 24 bytes of data.
func ParseBlockHeader(data []byte) (BlockHeader, error) {
	if len(data) < HeaderSize {
		return BlockHeader{}, errs.ErrInvalidHeaderSize
	}

	h := BlockHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return BlockHeader{}, err
	}

	return h, nil
}
