// Package encoding provides the column and string codecs used inside BDIO
// block payloads.
//
// Numeric columns are stored as fixed-width values of one format.ValueType in
// the block's byte order. NumericEncoder writes float64 samples in any of the
// supported widths; NumericDecoder reads them back as float64 regardless of the
// stored type:
//
//	enc := encoding.NewNumericEncoder(endian.GetBigEndianEngine(), format.TypeFloat32)
//	defer enc.Finish()
//	enc.WriteSlice(samples)
//	payload := append(payload, enc.Bytes()...)
//
//	dec, _ := encoding.NewNumericDecoder(engine, header.Flag.ValueType)
//	values, err := dec.Decode(payload[off:], count)
//
// Short strings (curve names, units, parameter names) use a uint8 length
// prefix, see VarStringEncoder and ReadVarString.
package encoding
