package bdio

import (
	"fmt"
	"os"

	"github.com/schottky-tools/tdfx/compress"
	"github.com/schottky-tools/tdfx/encoding"
	"github.com/schottky-tools/tdfx/endian"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/internal/hash"
	"github.com/schottky-tools/tdfx/internal/options"
	"github.com/schottky-tools/tdfx/internal/pool"
	"github.com/schottky-tools/tdfx/section"
)

type writerConfig struct {
	littleEndian bool
	compression  format.CompressionType
	valueType    format.ValueType
	checksum     bool
	directory    bool
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*writerConfig]

// WithBigEndian writes every block big-endian. This is the default.
func WithBigEndian() WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.littleEndian = false
	})
}

// WithLittleEndian writes every block little-endian.
func WithLittleEndian() WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.littleEndian = true
	})
}

// WithNativeEndian writes every block in the byte order of the host.
func WithNativeEndian() WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.littleEndian = endian.IsNativeLittleEndian()
	})
}

// WithCompression sets the payload codec. The default is CompressionNone.
func WithCompression(compression format.CompressionType) WriterOption {
	return options.New(func(c *writerConfig) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		c.compression = compression

		return nil
	})
}

// WithValueType sets the column type of xy-curve blocks. The default is
// TypeFloat64; narrower types round on write.
func WithValueType(valueType format.ValueType) WriterOption {
	return options.New(func(c *writerConfig) error {
		if err := encoding.ValidateValueType(valueType); err != nil {
			return err
		}
		c.valueType = valueType

		return nil
	})
}

// WithChecksum enables or disables payload checksums. Enabled by default.
func WithChecksum(enabled bool) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.checksum = enabled
	})
}

// WithDirectory controls whether a directory block leads the stream.
// Enabled by default.
func WithDirectory(enabled bool) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.directory = enabled
	})
}

type pendingBlock struct {
	header  *section.BlockHeader
	payload []byte
}

// Writer assembles a BDIO stream in memory.
//
// Blocks are encoded as they are added and laid out by Finish. A Writer is
// not safe for concurrent use.
type Writer struct {
	cfg      writerConfig
	codec    compress.Codec
	blocks   []pendingBlock
	finished bool
}

// NewWriter creates a writer configured by opts.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		cfg: writerConfig{
			compression: format.CompressionNone,
			valueType:   format.TypeFloat64,
			checksum:    true,
			directory:   true,
		},
	}

	if err := options.Apply(&w.cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(w.cfg.compression, "payload")
	if err != nil {
		return nil, err
	}
	w.codec = codec

	return w, nil
}

// AddXYCurve appends an xy-curve block.
//
// Parameters:
//   - name, xUnit, yUnit: Labels, at most 255 bytes each
//   - x, y: Sample columns of equal length
//
// Returns:
//   - error: ErrLengthMismatch, ErrTextTooLong, or ErrWriterFinished
func (w *Writer) AddXYCurve(name, xUnit, yUnit string, x, y []float64) error {
	if w.finished {
		return errs.ErrWriterFinished
	}

	if len(x) != len(y) {
		return fmt.Errorf("x has %d samples, y has %d: %w", len(x), len(y), errs.ErrLengthMismatch)
	}

	labels := encoding.NewVarStringEncoder()
	defer labels.Finish()

	if err := labels.WriteSlice([]string{name, xUnit, yUnit}); err != nil {
		return fmt.Errorf("xy-curve %q: %w", name, err)
	}

	header := w.newHeader(format.TagXYCurve)
	header.Flag.ValueType = w.cfg.valueType
	engine := header.Engine()

	columns := encoding.NewNumericEncoder(engine, w.cfg.valueType)
	defer columns.Finish()

	columns.WriteSlice(x)
	columns.WriteSlice(y)

	payload := make([]byte, 0, labels.Size()+4+columns.Size())
	payload = append(payload, labels.Bytes()...)
	payload = engine.AppendUint32(payload, uint32(len(x))) //nolint: gosec
	payload = append(payload, columns.Bytes()...)

	return w.add(header, payload)
}

// AddText appends a text block.
func (w *Writer) AddText(text string) error {
	if w.finished {
		return errs.ErrWriterFinished
	}

	header := w.newHeader(format.TagText)
	header.Flag.ValueType = format.TypeNone

	return w.add(header, []byte(text))
}

// AddParameters appends a parameter block. At most 65535 parameters fit in
// one block.
func (w *Writer) AddParameters(params []Parameter) error {
	if w.finished {
		return errs.ErrWriterFinished
	}

	if len(params) > 0xFFFF {
		return fmt.Errorf("%d parameters in one block: %w", len(params), errs.ErrInvalidPayload)
	}

	header := w.newHeader(format.TagParameter)
	engine := header.Engine()

	names := encoding.NewVarStringEncoder()
	defer names.Finish()

	payload := engine.AppendUint16(nil, uint16(len(params))) //nolint: gosec
	for _, p := range params {
		start := names.Size()
		if err := names.Write(p.Name); err != nil {
			return fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		payload = append(payload, names.Bytes()[start:]...)

		value := encoding.NewNumericEncoder(engine, format.TypeFloat64)
		value.Write(p.Value)
		payload = append(payload, value.Bytes()...)
		value.Finish()
	}

	return w.add(header, payload)
}

// Len returns the number of blocks added so far, excluding the directory.
func (w *Writer) Len() int {
	return len(w.blocks)
}

// Finish lays out the stream and returns it. The directory block, when
// enabled, comes first and records absolute block positions.
//
// The writer cannot be used after Finish.
func (w *Writer) Finish() ([]byte, error) {
	if w.finished {
		return nil, errs.ErrWriterFinished
	}
	w.finished = true

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	if w.cfg.directory {
		dirHeader, dirPayload, err := w.directoryBlock()
		if err != nil {
			return nil, err
		}
		writeBlock(buf, dirHeader, dirPayload)
	}

	for _, b := range w.blocks {
		writeBlock(buf, b.header, b.payload)
	}
	w.blocks = nil

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// WriteFile finishes the stream and writes it to path, replacing any
// existing file.
func (w *Writer) WriteFile(path string) error {
	data, err := w.Finish()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint: gosec
}

func (w *Writer) newHeader(tag format.BlockTag) *section.BlockHeader {
	header := section.NewBlockHeader(tag)
	if w.cfg.littleEndian {
		header.Flag.WithLittleEndian()
	}

	return header
}

// add compresses payload and queues the block. Payloads that do not shrink
// are stored uncompressed.
func (w *Writer) add(header *section.BlockHeader, payload []byte) error {
	if uint64(len(payload)) > section.MaxPayloadSize {
		return fmt.Errorf("%s payload of %d bytes: %w", header.Tag, len(payload), errs.ErrBlockTooLarge)
	}

	stored, compression, err := w.compress(payload)
	if err != nil {
		return fmt.Errorf("%s block: %w", header.Tag, err)
	}

	header.Flag.Compression = compression
	header.Size = uint32(len(stored))     //nolint: gosec
	header.RawSize = uint32(len(payload)) //nolint: gosec
	if w.cfg.checksum {
		header.Checksum = hash.Checksum(payload)
	}

	w.blocks = append(w.blocks, pendingBlock{header: header, payload: stored})

	return nil
}

func (w *Writer) compress(payload []byte) ([]byte, format.CompressionType, error) {
	if w.cfg.compression == format.CompressionNone || len(payload) == 0 {
		return payload, format.CompressionNone, nil
	}

	stored, err := w.codec.Compress(payload)
	if err != nil {
		return nil, 0, err
	}

	if len(stored) == 0 || len(stored) >= len(payload) {
		return payload, format.CompressionNone, nil
	}

	return stored, w.cfg.compression, nil
}

func (w *Writer) directoryBlock() (*section.BlockHeader, []byte, error) {
	header := w.newHeader(format.TagDirectory)
	header.Flag.ValueType = format.TypeNone
	engine := header.Engine()

	dirSize := int64(section.HeaderSize + section.DirectoryCountSize + len(w.blocks)*section.DirectoryEntrySize)
	if dirSize-section.HeaderSize > int64(section.MaxPayloadSize) {
		return nil, nil, fmt.Errorf("directory of %d entries: %w", len(w.blocks), errs.ErrBlockTooLarge)
	}

	entries := make([]section.DirectoryEntry, 0, len(w.blocks))
	pos := dirSize
	for _, b := range w.blocks {
		entries = append(entries, section.NewDirectoryEntry(b.header.Tag, pos, uint32(b.header.TotalSize()))) //nolint: gosec
		pos += b.header.TotalSize()
	}

	payload := section.AppendDirectory(nil, entries, engine)
	header.Size = uint32(len(payload))    //nolint: gosec
	header.RawSize = uint32(len(payload)) //nolint: gosec
	if w.cfg.checksum {
		header.Checksum = hash.Checksum(payload)
	}

	return header, payload, nil
}

func writeBlock(buf *pool.ByteBuffer, header *section.BlockHeader, payload []byte) {
	start := buf.Len()
	buf.ExtendOrGrow(section.HeaderSize)
	header.WriteToSlice(buf.Bytes(), start)
	buf.MustWrite(payload)
}
