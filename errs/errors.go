// Package errs defines the sentinel errors shared by the tdfx packages.
//
// Callers wrap these with fmt.Errorf("...: %w", err) and match them with errors.Is.
package errs

import "errors"

// Block layout errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid block header size")
	ErrInvalidMagic         = errors.New("invalid block magic number")
	ErrInvalidHeaderFlags   = errors.New("invalid block header flags")
	ErrInvalidEntrySize     = errors.New("invalid directory entry size")
	ErrBlockTooLarge        = errors.New("block exceeds maximum size")
	ErrTruncatedBlock       = errors.New("truncated block")
	ErrChecksumMismatch     = errors.New("block checksum mismatch")
	ErrInvalidPayload       = errors.New("invalid block payload")
	ErrUnsupportedValueType = errors.New("unsupported value type")
	ErrInvalidCompression   = errors.New("invalid compression type")
	ErrTextTooLong          = errors.New("text exceeds maximum length")
	ErrInvalidOffset        = errors.New("offset outside stream")
)

// Extraction and output errors.
var (
	ErrBlockNotFound    = errors.New("no xy-curve block in file")
	ErrEmptyCurve       = errors.New("curve has no samples")
	ErrLengthMismatch   = errors.New("x and y lengths differ")
	ErrInvalidAxisRange = errors.New("invalid histogram axis range")
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrWriterFinished   = errors.New("writer already finished")
)
