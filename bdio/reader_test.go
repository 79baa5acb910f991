package bdio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schottky-tools/tdfx/compress"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/section"
)

func buildStream(t *testing.T, opts ...WriterOption) []byte {
	t.Helper()

	w, err := NewWriter(opts...)
	require.NoError(t, err)

	require.NoError(t, w.AddText("acquired on bench 2"))
	require.NoError(t, w.AddXYCurve("iv", "V", "A", []float64{0, 0.5, 1}, []float64{1e-12, 1e-6, 1e-3}))
	require.NoError(t, w.AddXYCurve("cv", "V", "F", []float64{-1, 0}, []float64{3e-12, 4e-12}))

	data, err := w.Finish()
	require.NoError(t, err)

	return data
}

func rawBlock(tag format.BlockTag, payload []byte) []byte {
	header := section.NewBlockHeader(tag)
	header.Flag.ValueType = format.TypeNone
	header.Size = uint32(len(payload))    //nolint: gosec
	header.RawSize = uint32(len(payload)) //nolint: gosec

	return append(header.Bytes(), payload...)
}

func TestReaderDirectory(t *testing.T) {
	t.Run("FromDirectoryBlock", func(t *testing.T) {
		data := buildStream(t)

		r, err := NewReader(bytes.NewReader(data))
		require.NoError(t, err)

		dir, err := r.Directory()
		require.NoError(t, err)
		require.Len(t, dir, 3)
		require.Equal(t, format.TagText, dir[0].Tag)
		require.True(t, dir[1].IsXYCurve())
		require.True(t, dir[2].IsXYCurve())

		// position is unchanged, the next block is still the directory
		block, err := r.NextBlock()
		require.NoError(t, err)
		require.Equal(t, format.TagDirectory, block.Tag())
	})

	t.Run("ScannedWithoutDirectoryBlock", func(t *testing.T) {
		withDir := buildStream(t)
		withoutDir := buildStream(t, WithDirectory(false))

		r1, err := NewReader(bytes.NewReader(withDir))
		require.NoError(t, err)
		r2, err := NewReader(bytes.NewReader(withoutDir))
		require.NoError(t, err)

		dir1, err := r1.Directory()
		require.NoError(t, err)
		dir2, err := r2.Directory()
		require.NoError(t, err)
		require.Len(t, dir2, len(dir1))

		shift := int64(len(withDir) - len(withoutDir))
		for i := range dir1 {
			require.Equal(t, dir1[i].Tag, dir2[i].Tag)
			require.Equal(t, dir1[i].Size, dir2[i].Size)
			require.Equal(t, dir1[i].Pos-shift, dir2[i].Pos)
		}
	})

	t.Run("Cached", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(buildStream(t)))
		require.NoError(t, err)

		dir, err := r.Directory()
		require.NoError(t, err)
		dir[0].Pos = -1

		again, err := r.Directory()
		require.NoError(t, err)
		require.NotEqual(t, int64(-1), again[0].Pos)
	})

	t.Run("EmptyStream", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(nil))
		require.NoError(t, err)

		dir, err := r.Directory()
		require.NoError(t, err)
		require.Empty(t, dir)

		_, err = r.NextBlock()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("TruncatedScan", func(t *testing.T) {
		data := buildStream(t, WithDirectory(false))

		r, err := NewReader(bytes.NewReader(data[:len(data)-1]))
		require.NoError(t, err)

		_, err = r.Directory()
		require.ErrorIs(t, err, errs.ErrTruncatedBlock)
	})

	t.Run("EntryOutsideStream", func(t *testing.T) {
		engine := section.NewBlockFlag().GetEndianEngine()
		entries := []section.DirectoryEntry{section.NewDirectoryEntry(format.TagXYCurve, 4096, 64)}
		data := rawBlock(format.TagDirectory, section.AppendDirectory(nil, entries, engine))

		r, err := NewReader(bytes.NewReader(data))
		require.NoError(t, err)

		_, err = r.Directory()
		require.ErrorIs(t, err, errs.ErrInvalidOffset)
	})
}

func TestReaderSeekBlock(t *testing.T) {
	r, err := NewReader(bytes.NewReader(buildStream(t)))
	require.NoError(t, err)

	dir, err := r.Directory()
	require.NoError(t, err)

	require.NoError(t, r.SeekBlock(dir[2].Pos))
	block, err := r.NextBlock()
	require.NoError(t, err)

	curve, ok := block.(*XYCurveBlock)
	require.True(t, ok)
	require.Equal(t, "cv", curve.Name())
	require.Equal(t, 2, curve.Len())

	_, err = r.NextBlock()
	require.ErrorIs(t, err, io.EOF)

	require.ErrorIs(t, r.SeekBlock(-1), errs.ErrInvalidOffset)
	require.ErrorIs(t, r.SeekBlock(r.Size()+1), errs.ErrInvalidOffset)
}

func TestReaderBlocks(t *testing.T) {
	blocks := readAll(t, buildStream(t))
	require.Len(t, blocks, 4)

	text, ok := blocks[1].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "acquired on bench 2", text.Text())
}

func TestReaderRawBlock(t *testing.T) {
	data := rawBlock(format.BlockTag(0x0099), []byte{1, 2, 3})

	blocks := readAll(t, data)
	require.Len(t, blocks, 1)

	raw, ok := blocks[0].(*RawBlock)
	require.True(t, ok)
	require.Equal(t, format.BlockTag(0x0099), raw.Tag())
	require.Equal(t, []byte{1, 2, 3}, raw.Payload())
}

func TestReaderErrors(t *testing.T) {
	t.Run("TruncatedPayload", func(t *testing.T) {
		data := buildStream(t)

		r, err := NewReader(bytes.NewReader(data[:len(data)-3]))
		require.NoError(t, err)

		var lastErr error
		for _, err := range r.Blocks() {
			lastErr = err
		}
		require.ErrorIs(t, lastErr, errs.ErrTruncatedBlock)
	})

	t.Run("TruncatedHeader", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(make([]byte, section.HeaderSize-4)))
		require.NoError(t, err)

		_, err = r.NextBlock()
		require.ErrorIs(t, err, errs.ErrTruncatedBlock)
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		data := buildStream(t)
		data[0] = 0

		r, err := NewReader(bytes.NewReader(data))
		require.NoError(t, err)

		_, err = r.NextBlock()
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("ChecksumMismatch", func(t *testing.T) {
		data := buildStream(t)
		data[len(data)-1] ^= 0xFF

		var lastErr error
		r, err := NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		for _, err := range r.Blocks() {
			lastErr = err
		}
		require.ErrorIs(t, lastErr, errs.ErrChecksumMismatch)

		blocks := readAll(t, data, WithChecksumVerification(false))
		require.Len(t, blocks, 4)
	})

	t.Run("BlockTooLarge", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(buildStream(t)), WithMaxBlockSize(8))
		require.NoError(t, err)

		_, err = r.NextBlock()
		require.ErrorIs(t, err, errs.ErrBlockTooLarge)
	})

	t.Run("ZeroMaxBlockSize", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(nil), WithMaxBlockSize(0))
		require.Error(t, err)
	})

	t.Run("CurveColumnsShort", func(t *testing.T) {
		engine := section.NewBlockFlag().GetEndianEngine()
		payload := []byte{0, 0, 0}
		payload = engine.AppendUint32(payload, 2)
		payload = append(payload, make([]byte, 8)...)

		header := section.NewBlockHeader(format.TagXYCurve)
		header.Size = uint32(len(payload))    //nolint: gosec
		header.RawSize = uint32(len(payload)) //nolint: gosec
		data := append(header.Bytes(), payload...)

		r, err := NewReader(bytes.NewReader(data))
		require.NoError(t, err)

		_, err = r.NextBlock()
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func TestReaderBoundsDecompressedSize(t *testing.T) {
	const inflated = 48 * 1024 * 1024

	for _, compression := range []format.CompressionType{
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionXZ,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(compression)
			require.NoError(t, err)

			stored, err := codec.Compress(make([]byte, inflated))
			require.NoError(t, err)

			// the header claims 16 decoded bytes for a payload inflating to 48 MiB
			header := section.NewBlockHeader(format.TagText)
			header.Flag.ValueType = format.TypeNone
			header.Flag.Compression = compression
			header.Size = uint32(len(stored)) //nolint: gosec
			header.RawSize = 16
			data := append(header.Bytes(), stored...)

			r, err := NewReader(bytes.NewReader(data), WithMaxBlockSize(1<<20))
			require.NoError(t, err)

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, err = r.NextBlock()
			runtime.ReadMemStats(&after)

			require.Error(t, err)
			require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16*1024*1024))
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tdf")

	w, err := NewWriter(WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	require.NoError(t, w.AddXYCurve("iv", "V", "A", []float64{1, 2}, []float64{3, 4}))
	require.NoError(t, w.WriteFile(path))

	r, err := Open(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, info.Size(), r.Size())

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing.tdf"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
