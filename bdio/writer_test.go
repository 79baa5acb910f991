package bdio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schottky-tools/tdfx/endian"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/section"
)

func repetitiveCurve(n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range n {
		x[i] = float64(i % 10)
	}

	return x, y
}

func readAll(t *testing.T, data []byte, opts ...ReaderOption) []Block {
	t.Helper()

	r, err := NewReader(bytes.NewReader(data), opts...)
	require.NoError(t, err)

	var blocks []Block
	for block, err := range r.Blocks() {
		require.NoError(t, err)
		blocks = append(blocks, block)
	}

	return blocks
}

func TestNewWriter(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)
		require.False(t, w.cfg.littleEndian)
		require.Equal(t, format.CompressionNone, w.cfg.compression)
		require.Equal(t, format.TypeFloat64, w.cfg.valueType)
		require.True(t, w.cfg.checksum)
		require.True(t, w.cfg.directory)
	})

	t.Run("NativeEndian", func(t *testing.T) {
		w, err := NewWriter(WithNativeEndian())
		require.NoError(t, err)
		require.Equal(t, endian.IsNativeLittleEndian(), w.cfg.littleEndian)
	})

	t.Run("InvalidCompression", func(t *testing.T) {
		_, err := NewWriter(WithCompression(format.CompressionType(0x7F)))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("InvalidValueType", func(t *testing.T) {
		_, err := NewWriter(WithValueType(format.TypeNone))
		require.ErrorIs(t, err, errs.ErrUnsupportedValueType)
	})
}

func TestWriterXYCurveRoundTrip(t *testing.T) {
	x := []float64{-1, -0.5, 0, 0.5, 1}
	y := []float64{1e-9, 2.5e-7, 3e-3, 0.125, 42}

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionXZ,
	} {
		for _, little := range []bool{false, true} {
			name := compression.String()
			if little {
				name += "/LittleEndian"
			}

			t.Run(name, func(t *testing.T) {
				opts := []WriterOption{WithCompression(compression)}
				if little {
					opts = append(opts, WithLittleEndian())
				}

				w, err := NewWriter(opts...)
				require.NoError(t, err)
				require.NoError(t, w.AddXYCurve("iv", "V", "A", x, y))

				data, err := w.Finish()
				require.NoError(t, err)

				blocks := readAll(t, data)
				require.Len(t, blocks, 2)
				require.IsType(t, &DirectoryBlock{}, blocks[0])

				curve, ok := blocks[1].(*XYCurveBlock)
				require.True(t, ok)
				require.Equal(t, "iv", curve.Name())
				require.Equal(t, "V", curve.XUnit())
				require.Equal(t, "A", curve.YUnit())
				require.Equal(t, x, curve.XValues())
				require.Equal(t, y, curve.YValues())
				require.Equal(t, little, curve.Header().Flag.IsLittleEndian())
			})
		}
	}
}

func TestWriterCompressesRepetitivePayloads(t *testing.T) {
	x, y := repetitiveCurve(1000)

	for _, compression := range []format.CompressionType{
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionXZ,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			w, err := NewWriter(WithCompression(compression))
			require.NoError(t, err)
			require.NoError(t, w.AddXYCurve("", "", "", x, y))

			data, err := w.Finish()
			require.NoError(t, err)

			blocks := readAll(t, data)
			require.Len(t, blocks, 2)

			header := blocks[1].Header()
			require.Equal(t, compression, header.Flag.Compression)
			require.Less(t, header.Size, header.RawSize)

			curve := blocks[1].(*XYCurveBlock)
			require.Equal(t, x, curve.XValues())
			require.Equal(t, y, curve.YValues())
		})
	}
}

func TestWriterFallsBackToStoredPayload(t *testing.T) {
	w, err := NewWriter(WithCompression(format.CompressionZlib))
	require.NoError(t, err)
	require.NoError(t, w.AddText("x"))

	data, err := w.Finish()
	require.NoError(t, err)

	blocks := readAll(t, data)
	require.Len(t, blocks, 2)
	require.Equal(t, format.CompressionNone, blocks[1].Header().Flag.Compression)
	require.Equal(t, "x", blocks[1].(*TextBlock).Text())
}

func TestWriterNarrowValueTypes(t *testing.T) {
	tests := []struct {
		name      string
		valueType format.ValueType
		in        []float64
		want      []float64
	}{
		{
			name:      "Float32",
			valueType: format.TypeFloat32,
			in:        []float64{0.5, -1.25, 1024},
			want:      []float64{0.5, -1.25, 1024},
		},
		{
			name:      "Int32",
			valueType: format.TypeInt32,
			in:        []float64{1.4, -2.6, 3e10},
			want:      []float64{1, -3, 2147483647},
		},
		{
			name:      "Int16",
			valueType: format.TypeInt16,
			in:        []float64{1.5, -40000, 40000},
			want:      []float64{2, -32768, 32767},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWriter(WithValueType(tt.valueType))
			require.NoError(t, err)
			require.NoError(t, w.AddXYCurve("n", "", "", tt.in, tt.in))

			data, err := w.Finish()
			require.NoError(t, err)

			blocks := readAll(t, data)
			curve := blocks[1].(*XYCurveBlock)
			require.Equal(t, tt.valueType, curve.Header().Flag.ValueType)
			require.Equal(t, tt.want, curve.XValues())
			require.Equal(t, tt.want, curve.YValues())
		})
	}
}

func TestWriterDirectoryLayout(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)

	require.NoError(t, w.AddText("notes"))
	require.NoError(t, w.AddParameters([]Parameter{{Name: "temperature", Value: 300}}))
	require.NoError(t, w.AddXYCurve("iv", "V", "A", []float64{0, 1}, []float64{2, 3}))
	require.Equal(t, 3, w.Len())

	data, err := w.Finish()
	require.NoError(t, err)

	blocks := readAll(t, data)
	require.Len(t, blocks, 4)

	dir, ok := blocks[0].(*DirectoryBlock)
	require.True(t, ok)

	entries := dir.Entries()
	require.Len(t, entries, 3)

	pos := int64(section.HeaderSize + section.DirectoryCountSize + 3*section.DirectoryEntrySize)
	tags := []format.BlockTag{format.TagText, format.TagParameter, format.TagXYCurve}
	for i, e := range entries {
		require.Equal(t, tags[i], e.Tag)
		require.Equal(t, pos, e.Pos)

		header, err := section.ParseBlockHeader(data[e.Pos:])
		require.NoError(t, err)
		require.Equal(t, tags[i], header.Tag)
		require.Equal(t, header.TotalSize(), int64(e.Size))

		pos += int64(e.Size)
	}
	require.Equal(t, int64(len(data)), pos)
}

func TestWriterWithoutDirectory(t *testing.T) {
	w, err := NewWriter(WithDirectory(false), WithChecksum(false))
	require.NoError(t, err)
	require.NoError(t, w.AddXYCurve("iv", "", "", []float64{1}, []float64{2}))

	data, err := w.Finish()
	require.NoError(t, err)

	blocks := readAll(t, data)
	require.Len(t, blocks, 1)
	require.Equal(t, format.TagXYCurve, blocks[0].Tag())
	require.Zero(t, blocks[0].Header().Checksum)
}

func TestWriterParameters(t *testing.T) {
	params := []Parameter{
		{Name: "temperature", Value: 293.15},
		{Name: "compliance", Value: 1e-3},
		{Name: "", Value: -7},
	}

	w, err := NewWriter(WithLittleEndian())
	require.NoError(t, err)
	require.NoError(t, w.AddParameters(params))

	data, err := w.Finish()
	require.NoError(t, err)

	blocks := readAll(t, data)
	block, ok := blocks[1].(*ParameterBlock)
	require.True(t, ok)
	require.Equal(t, params, block.Parameters())

	v, ok := block.Lookup("compliance")
	require.True(t, ok)
	require.Equal(t, 1e-3, v)

	_, ok = block.Lookup("missing")
	require.False(t, ok)
}

func TestWriterErrors(t *testing.T) {
	t.Run("LengthMismatch", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)

		err = w.AddXYCurve("", "", "", []float64{1, 2}, []float64{1})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
		require.Zero(t, w.Len())
	})

	t.Run("LabelTooLong", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)

		err = w.AddXYCurve(strings.Repeat("n", 256), "", "", nil, nil)
		require.ErrorIs(t, err, errs.ErrTextTooLong)

		err = w.AddParameters([]Parameter{{Name: strings.Repeat("p", 300)}})
		require.ErrorIs(t, err, errs.ErrTextTooLong)
	})

	t.Run("Finished", func(t *testing.T) {
		w, err := NewWriter()
		require.NoError(t, err)

		_, err = w.Finish()
		require.NoError(t, err)

		require.ErrorIs(t, w.AddText("late"), errs.ErrWriterFinished)
		require.ErrorIs(t, w.AddXYCurve("", "", "", nil, nil), errs.ErrWriterFinished)
		require.ErrorIs(t, w.AddParameters(nil), errs.ErrWriterFinished)

		_, err = w.Finish()
		require.ErrorIs(t, err, errs.ErrWriterFinished)
	})
}
