package encoding

import "iter"

// ColumnarEncoder appends values of type T to an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice. It is valid until the next write
	// or Finish, and must not be modified.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Finish returns the buffer to the pool. The encoder is unusable afterwards:
	//
	//	enc := NewNumericEncoder(engine, format.TypeFloat64)
	//	defer enc.Finish()
	Finish()

	// Write appends a single value.
	Write(data T)

	// WriteSlice appends all values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values of type T from an encoded byte slice.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count decoded values. It yields nothing when data is
	// shorter than count values.
	All(data []byte, count int) iter.Seq[T]

	// At retrieves the value at index, reporting false when index is outside
	// [0, count) or the data is too short.
	At(data []byte, index int, count int) (T, bool)
}
