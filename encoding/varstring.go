package encoding

import (
	"fmt"

	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/internal/pool"
)

// MaxTextLength is the longest string a uint8 length prefix can describe.
const MaxTextLength = 255

// VarStringEncoder encodes short strings with a uint8 length prefix.
//
// Each string is encoded as:
//   - 1 byte: length (0-255)
//   - N bytes: string data (UTF-8)
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewVarStringEncoder creates a new variable-length string encoder.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{
		buf: pool.GetBlockBuffer(),
	}
}

// Write encodes a single string.
//
// Returns ErrTextTooLong if text exceeds MaxTextLength bytes.
func (e *VarStringEncoder) Write(text string) error {
	if len(text) > MaxTextLength {
		return fmt.Errorf("text length %d exceeds maximum %d: %w", len(text), MaxTextLength, errs.ErrTextTooLong)
	}

	e.buf.Grow(1 + len(text))
	e.buf.MustWrite([]byte{uint8(len(text))}) //nolint: gosec
	e.buf.MustWrite([]byte(text))
	e.count++

	return nil
}

// WriteSlice encodes all texts, or none if any is too long.
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	total := 0
	for _, text := range texts {
		if len(text) > MaxTextLength {
			return fmt.Errorf("text length %d exceeds maximum %d: %w", len(text), MaxTextLength, errs.ErrTextTooLong)
		}
		total += 1 + len(text)
	}

	e.buf.Grow(total)
	for _, text := range texts {
		e.buf.MustWrite([]byte{uint8(len(text))}) //nolint: gosec
		e.buf.MustWrite([]byte(text))
		e.count++
	}

	return nil
}

// Bytes returns the encoded data. Do not modify the returned slice.
func (e *VarStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of strings encoded.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the total size of encoded data in bytes.
func (e *VarStringEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *VarStringEncoder) Finish() {
	if e.buf != nil {
		pool.PutBlockBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// ReadVarString decodes the length-prefixed string starting at data[offset]
// and returns it with the offset just past it.
func ReadVarString(data []byte, offset int) (string, int, error) {
	if offset < 0 || offset >= len(data) {
		return "", offset, fmt.Errorf("string length prefix at %d: %w", offset, errs.ErrInvalidPayload)
	}

	n := int(data[offset])
	start := offset + 1
	if start+n > len(data) {
		return "", offset, fmt.Errorf("string of %d bytes at %d: %w", n, offset, errs.ErrInvalidPayload)
	}

	return string(data[start : start+n]), start + n, nil
}
