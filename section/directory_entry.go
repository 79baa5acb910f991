package section

import (
	"github.com/schottky-tools/tdfx/endian"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
)

// DirectoryEntry describes one block of a stream without its payload.
// It is a fixed size of 16 bytes on disk:
//
//	offset 0-1   Tag
//	offset 2-3   reserved, zero
//	offset 4-7   Size, whole block including header
//	offset 8-15  Pos, absolute offset of the block header
type DirectoryEntry struct {
	Tag  format.BlockTag
	Size uint32
	Pos  int64
}

// NewDirectoryEntry creates a directory entry for a block at pos.
func NewDirectoryEntry(tag format.BlockTag, pos int64, size uint32) DirectoryEntry {
	return DirectoryEntry{Tag: tag, Pos: pos, Size: size}
}

// IsXYCurve reports whether the entry points at an xy-curve block.
func (e DirectoryEntry) IsXYCurve() bool {
	return e.Tag == format.TagXYCurve
}

// Bytes returns the entry as a 16-byte slice using the given engine.
func (e DirectoryEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [DirectoryEntrySize]byte
	e.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
func (e DirectoryEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint16(data[offset:offset+2], uint16(e.Tag))
	engine.PutUint16(data[offset+2:offset+4], 0)
	engine.PutUint32(data[offset+4:offset+8], e.Size)
	engine.PutUint64(data[offset+8:offset+16], uint64(e.Pos)) //nolint: gosec

	return offset + DirectoryEntrySize
}

// ParseDirectoryEntry parses a DirectoryEntry from a byte slice.
//
// Returns ErrInvalidEntrySize if data is shorter than 16 bytes.
func ParseDirectoryEntry(data []byte, engine endian.EndianEngine) (DirectoryEntry, error) {
	if len(data) < DirectoryEntrySize {
		return DirectoryEntry{}, errs.ErrInvalidEntrySize
	}

	return DirectoryEntry{
		Tag:  format.BlockTag(engine.Uint16(data[0:2])),
		Size: engine.Uint32(data[4:8]),
		Pos:  int64(engine.Uint64(data[8:16])), //nolint: gosec
	}, nil
}

// ParseDirectory parses a directory payload: a uint32 count followed by count
// entries.
func ParseDirectory(payload []byte, engine endian.EndianEngine) ([]DirectoryEntry, error) {
	if len(payload) < DirectoryCountSize {
		return nil, errs.ErrInvalidPayload
	}

	count := int(engine.Uint32(payload[0:DirectoryCountSize]))
	body := payload[DirectoryCountSize:]
	if count < 0 || len(body) != count*DirectoryEntrySize {
		return nil, errs.ErrInvalidPayload
	}

	entries := make([]DirectoryEntry, 0, count)
	for off := 0; off < len(body); off += DirectoryEntrySize {
		entry, err := ParseDirectoryEntry(body[off:], engine)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// AppendDirectory appends the directory payload for entries to dst.
func AppendDirectory(dst []byte, entries []DirectoryEntry, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(len(entries))) //nolint: gosec
	for _, e := range entries {
		dst = append(dst, e.Bytes(engine)...)
	}

	return dst
}
