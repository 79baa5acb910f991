package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/schottky-tools/tdfx/endian"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/internal/pool"
)

// NumericEncoder encodes float64 samples as fixed-width values of one
// format.ValueType.
//
// Integer types round to the nearest integer and saturate at the type's range.
// Float32 rounds to the nearest representable value.
type NumericEncoder struct {
	buf       *pool.ByteBuffer
	engine    endian.EndianEngine
	valueType format.ValueType
	width     int
	count     int
}

var _ ColumnarEncoder[float64] = (*NumericEncoder)(nil)

// NewNumericEncoder creates an encoder writing valueType values in the byte
// order of engine. It panics on a value type without a fixed width; callers
// validate the type first with ValidateValueType.
func NewNumericEncoder(engine endian.EndianEngine, valueType format.ValueType) *NumericEncoder {
	width := valueType.Size()
	if width == 0 {
		panic(fmt.Sprintf("encoding: value type %s has no fixed width", valueType))
	}

	return &NumericEncoder{
		buf:       pool.GetBlockBuffer(),
		engine:    engine,
		valueType: valueType,
		width:     width,
	}
}

// ValidateValueType returns ErrUnsupportedValueType unless v is a numeric
// column type.
func ValidateValueType(v format.ValueType) error {
	if v.Size() == 0 {
		return fmt.Errorf("%s: %w", v, errs.ErrUnsupportedValueType)
	}

	return nil
}

// Write encodes a single value.
//
// Panics if Finish() has been called.
func (e *NumericEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	start := e.buf.Len()
	e.buf.ExtendOrGrow(e.width)
	e.put(e.buf.Slice(start, start+e.width), val)
	e.count++
}

// WriteSlice encodes values with a single buffer growth.
//
// Panics if Finish() has been called.
func (e *NumericEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if len(values) == 0 {
		return
	}

	start := e.buf.Len()
	e.buf.ExtendOrGrow(len(values) * e.width)

	for i, v := range values {
		off := start + i*e.width
		e.put(e.buf.Slice(off, off+e.width), v)
	}
	e.count += len(values)
}

// Bytes returns the encoded values.
func (e *NumericEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *NumericEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *NumericEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *NumericEncoder) Finish() {
	if e.buf != nil {
		pool.PutBlockBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

func (e *NumericEncoder) put(b []byte, v float64) {
	switch e.valueType { //nolint: exhaustive
	case format.TypeFloat64:
		e.engine.PutUint64(b, math.Float64bits(v))
	case format.TypeFloat32:
		e.engine.PutUint32(b, math.Float32bits(float32(v)))
	case format.TypeInt32:
		e.engine.PutUint32(b, uint32(int32(saturate(v, math.MinInt32, math.MaxInt32)))) //nolint: gosec
	case format.TypeInt16:
		e.engine.PutUint16(b, uint16(int16(saturate(v, math.MinInt16, math.MaxInt16)))) //nolint: gosec
	}
}

func saturate(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return math.Round(v)
	}
}

// NumericDecoder decodes fixed-width numeric columns into float64 values.
//
// The decoder is immutable and can be reused.
type NumericDecoder struct {
	engine    endian.EndianEngine
	valueType format.ValueType
	width     int
}

var _ ColumnarDecoder[float64] = NumericDecoder{}

// NewNumericDecoder creates a decoder for valueType values in the byte order
// of engine.
//
// Returns ErrUnsupportedValueType for types without a fixed width.
func NewNumericDecoder(engine endian.EndianEngine, valueType format.ValueType) (NumericDecoder, error) {
	if err := ValidateValueType(valueType); err != nil {
		return NumericDecoder{}, err
	}

	return NumericDecoder{
		engine:    engine,
		valueType: valueType,
		width:     valueType.Size(),
	}, nil
}

// Width returns the encoded size of one value in bytes.
func (d NumericDecoder) Width() int {
	return d.width
}

// All yields count values decoded from data.
func (d NumericDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*d.width {
			return
		}

		for i := range count {
			off := i * d.width
			if !yield(d.value(data[off : off+d.width])) {
				return
			}
		}
	}
}

// At returns the value at index.
func (d NumericDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	off := index * d.width
	if off+d.width > len(data) {
		return 0, false
	}

	return d.value(data[off : off+d.width]), true
}

// Decode decodes exactly count values into a new slice.
//
// Returns ErrInvalidPayload when data holds fewer than count values.
func (d NumericDecoder) Decode(data []byte, count int) ([]float64, error) {
	if count < 0 || len(data) < count*d.width {
		return nil, fmt.Errorf("need %d %s values, have %d bytes: %w", count, d.valueType, len(data), errs.ErrInvalidPayload)
	}

	out := make([]float64, 0, count)
	for v := range d.All(data, count) {
		out = append(out, v)
	}

	return out, nil
}

func (d NumericDecoder) value(b []byte) float64 {
	switch d.valueType { //nolint: exhaustive
	case format.TypeFloat64:
		return math.Float64frombits(d.engine.Uint64(b))
	case format.TypeFloat32:
		return float64(math.Float32frombits(d.engine.Uint32(b)))
	case format.TypeInt32:
		return float64(int32(d.engine.Uint32(b))) //nolint: gosec
	case format.TypeInt16:
		return float64(int16(d.engine.Uint16(b))) //nolint: gosec
	default:
		return math.NaN()
	}
}
