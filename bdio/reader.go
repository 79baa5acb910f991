package bdio

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"

	"github.com/schottky-tools/tdfx/compress"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/internal/hash"
	"github.com/schottky-tools/tdfx/internal/options"
	"github.com/schottky-tools/tdfx/section"
)

type readerConfig struct {
	verifyChecksum bool
	maxBlockSize   uint32
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*readerConfig]

// WithChecksumVerification enables or disables checksum verification of
// decoded payloads. Verification is on by default; blocks without a recorded
// checksum are never verified.
func WithChecksumVerification(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.verifyChecksum = enabled
	})
}

// WithMaxBlockSize limits the stored and decoded payload size the reader is
// willing to allocate for a single block.
//
// Returns an error when n is 0.
func WithMaxBlockSize(n uint32) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if n == 0 {
			return fmt.Errorf("max block size must be positive: %w", errs.ErrBlockTooLarge)
		}
		c.maxBlockSize = n

		return nil
	})
}

// Reader reads blocks sequentially from a BDIO stream.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	rs     io.ReadSeeker
	closer io.Closer
	cfg    readerConfig
	size   int64
	pos    int64

	dir       []section.DirectoryEntry
	dirLoaded bool
}

// Open opens the BDIO file at path. The caller must Close the reader.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f

	return r, nil
}

// NewReader creates a reader over rs, positioned at the start of the stream.
//
// Close on the returned reader does not close rs.
func NewReader(rs io.ReadSeeker, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		rs: rs,
		cfg: readerConfig{
			verifyChecksum: true,
			maxBlockSize:   section.DefaultMaxPayloadSize,
		},
	}

	if err := options.Apply(&r.cfg, opts...); err != nil {
		return nil, err
	}

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	r.size = size

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	return r, nil
}

// Close releases the underlying file when the reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	err := r.closer.Close()
	r.closer = nil

	return err
}

// Size returns the stream length in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// SeekBlock positions the reader at the absolute offset pos, which should be the
// start of a block header, e.g. a directory entry's Pos.
//
// Returns ErrInvalidOffset when pos lies outside the stream.
func (r *Reader) SeekBlock(pos int64) error {
	if pos < 0 || pos > r.size {
		return fmt.Errorf("seek to %d in %d-byte stream: %w", pos, r.size, errs.ErrInvalidOffset)
	}

	if _, err := r.rs.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	r.pos = pos

	return nil
}

// NextBlock reads and decodes the block at the current position.
//
// Returns io.EOF when the reader is at the end of the stream.
func (r *Reader) NextBlock() (Block, error) {
	start := r.pos

	header, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	payload, err := r.readPayload(header)
	if err != nil {
		return nil, fmt.Errorf("%s block at %d: %w", header.Tag, start, err)
	}

	block, err := decodeBlock(header, payload)
	if err != nil {
		return nil, fmt.Errorf("%s block at %d: %w", header.Tag, start, err)
	}

	return block, nil
}

// Blocks iterates over the remaining blocks of the stream. Iteration stops
// after the first error, which is yielded with a nil Block.
func (r *Reader) Blocks() iter.Seq2[Block, error] {
	return func(yield func(Block, error) bool) {
		for {
			block, err := r.NextBlock()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(block, err) || err != nil {
				return
			}
		}
	}
}

// Directory returns the block directory of the stream.
//
// When the first block is a directory block its entries are returned,
// otherwise the directory is rebuilt by walking the block headers. The result
// is cached and the reader position is left unchanged.
func (r *Reader) Directory() ([]section.DirectoryEntry, error) {
	if r.dirLoaded {
		return slices.Clone(r.dir), nil
	}

	saved := r.pos
	dir, err := r.loadDirectory()
	if seekErr := r.SeekBlock(saved); err == nil {
		err = seekErr
	}

	if err != nil {
		return nil, err
	}

	r.dir = dir
	r.dirLoaded = true

	return slices.Clone(dir), nil
}

func (r *Reader) loadDirectory() ([]section.DirectoryEntry, error) {
	if err := r.SeekBlock(0); err != nil {
		return nil, err
	}

	if r.size == 0 {
		return nil, nil
	}

	header, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	if header.Tag == format.TagDirectory {
		payload, err := r.readPayload(header)
		if err != nil {
			return nil, fmt.Errorf("directory block: %w", err)
		}

		entries, err := section.ParseDirectory(payload, header.Engine())
		if err != nil {
			return nil, fmt.Errorf("directory block: %w", err)
		}

		for _, e := range entries {
			if e.Pos < 0 || e.Pos+int64(e.Size) > r.size {
				return nil, fmt.Errorf("%s entry at %d: %w", e.Tag, e.Pos, errs.ErrInvalidOffset)
			}
		}

		return entries, nil
	}

	return r.scanHeaders(header)
}

// scanHeaders builds directory entries by skipping over payloads. first is
// the already consumed header of the block at offset 0.
func (r *Reader) scanHeaders(first section.BlockHeader) ([]section.DirectoryEntry, error) {
	var entries []section.DirectoryEntry

	header := first
	pos := int64(0)
	for {
		next := pos + header.TotalSize()
		if next > r.size {
			return nil, fmt.Errorf("%s block at %d: %w", header.Tag, pos, errs.ErrTruncatedBlock)
		}

		entries = append(entries, section.NewDirectoryEntry(header.Tag, pos, uint32(header.TotalSize()))) //nolint: gosec

		if err := r.SeekBlock(next); err != nil {
			return nil, err
		}

		var err error
		header, err = r.readHeader()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		pos = next
	}
}

func (r *Reader) readHeader() (section.BlockHeader, error) {
	if r.pos >= r.size {
		return section.BlockHeader{}, io.EOF
	}

	var buf [section.HeaderSize]byte
	n, err := io.ReadFull(r.rs, buf[:])
	r.pos += int64(n)

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return section.BlockHeader{}, fmt.Errorf("header at %d: %w", r.pos-int64(n), errs.ErrTruncatedBlock)
	}
	if err != nil {
		return section.BlockHeader{}, err
	}

	return section.ParseBlockHeader(buf[:])
}

func (r *Reader) readPayload(header section.BlockHeader) ([]byte, error) {
	if header.Size > r.cfg.maxBlockSize || header.RawSize > r.cfg.maxBlockSize {
		return nil, fmt.Errorf("payload of %d bytes (%d decoded), limit %d: %w",
			header.Size, header.RawSize, r.cfg.maxBlockSize, errs.ErrBlockTooLarge)
	}

	if r.pos+int64(header.Size) > r.size {
		return nil, fmt.Errorf("payload of %d bytes, %d left: %w", header.Size, r.size-r.pos, errs.ErrTruncatedBlock)
	}

	stored := make([]byte, header.Size)
	n, err := io.ReadFull(r.rs, stored)
	r.pos += int64(n)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", errs.ErrTruncatedBlock)
	}

	codec, err := compress.GetCodec(header.Flag.Compression)
	if err != nil {
		return nil, err
	}

	payload, err := compress.DecompressTo(codec, stored, int(header.RawSize))
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", header.Flag.Compression, err)
	}

	if r.cfg.verifyChecksum && !hash.Verify(payload, header.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	return payload, nil
}
