package bdio

import (
	"fmt"
	"slices"

	"github.com/schottky-tools/tdfx/encoding"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/section"
)

// Block is a decoded BDIO block.
//
// The concrete type depends on the header tag: *DirectoryBlock, *XYCurveBlock,
// *TextBlock, *ParameterBlock, or *RawBlock for tags this package does not
// interpret.
type Block interface {
	// Header returns the parsed block header.
	Header() section.BlockHeader
	// Tag returns the block tag.
	Tag() format.BlockTag
}

type blockBase struct {
	header section.BlockHeader
}

func (b blockBase) Header() section.BlockHeader { return b.header }

func (b blockBase) Tag() format.BlockTag { return b.header.Tag }

// DirectoryBlock lists every block of the stream.
type DirectoryBlock struct {
	blockBase
	entries []section.DirectoryEntry
}

// Entries returns a copy of the directory entries in stream order.
func (b *DirectoryBlock) Entries() []section.DirectoryEntry {
	return slices.Clone(b.entries)
}

// XYCurveBlock holds two parallel sample columns.
type XYCurveBlock struct {
	blockBase
	name  string
	xUnit string
	yUnit string
	x     []float64
	y     []float64
}

// Name returns the curve name, possibly empty.
func (b *XYCurveBlock) Name() string { return b.name }

// XUnit returns the unit of the x column, possibly empty.
func (b *XYCurveBlock) XUnit() string { return b.xUnit }

// YUnit returns the unit of the y column, possibly empty.
func (b *XYCurveBlock) YUnit() string { return b.yUnit }

// Len returns the number of samples.
func (b *XYCurveBlock) Len() int { return len(b.x) }

// XValues returns a copy of the x samples in stored order.
func (b *XYCurveBlock) XValues() []float64 { return slices.Clone(b.x) }

// YValues returns a copy of the y samples in stored order.
func (b *XYCurveBlock) YValues() []float64 { return slices.Clone(b.y) }

// TextBlock holds free-form UTF-8 text such as acquisition notes.
type TextBlock struct {
	blockBase
	text string
}

// Text returns the block text.
func (b *TextBlock) Text() string { return b.text }

// Parameter is a named scalar stored in a parameter block.
type Parameter struct {
	Name  string
	Value float64
}

// ParameterBlock holds named float64 values, e.g. acquisition settings.
type ParameterBlock struct {
	blockBase
	params []Parameter
}

// Parameters returns a copy of the parameters in stored order.
func (b *ParameterBlock) Parameters() []Parameter {
	return slices.Clone(b.params)
}

// Lookup returns the value of the first parameter called name.
func (b *ParameterBlock) Lookup(name string) (float64, bool) {
	for _, p := range b.params {
		if p.Name == name {
			return p.Value, true
		}
	}

	return 0, false
}

// RawBlock is a block with a tag this package does not decode.
type RawBlock struct {
	blockBase
	payload []byte
}

// Payload returns a copy of the decompressed payload.
func (b *RawBlock) Payload() []byte {
	return slices.Clone(b.payload)
}

// decodeBlock turns a decompressed payload into the block type for its tag.
func decodeBlock(header section.BlockHeader, payload []byte) (Block, error) {
	base := blockBase{header: header}

	switch header.Tag {
	case format.TagDirectory:
		entries, err := section.ParseDirectory(payload, header.Engine())
		if err != nil {
			return nil, fmt.Errorf("directory block: %w", err)
		}

		return &DirectoryBlock{blockBase: base, entries: entries}, nil
	case format.TagXYCurve:
		return decodeXYCurve(base, payload)
	case format.TagText:
		return &TextBlock{blockBase: base, text: string(payload)}, nil
	case format.TagParameter:
		return decodeParameters(base, payload)
	default:
		return &RawBlock{blockBase: base, payload: payload}, nil
	}
}

func decodeXYCurve(base blockBase, payload []byte) (*XYCurveBlock, error) {
	block := &XYCurveBlock{blockBase: base}

	var (
		off int
		err error
	)

	for _, dst := range []*string{&block.name, &block.xUnit, &block.yUnit} {
		*dst, off, err = encoding.ReadVarString(payload, off)
		if err != nil {
			return nil, fmt.Errorf("xy-curve labels: %w", err)
		}
	}

	engine := base.header.Engine()
	if len(payload)-off < 4 {
		return nil, fmt.Errorf("xy-curve sample count: %w", errs.ErrInvalidPayload)
	}
	count := int(engine.Uint32(payload[off : off+4]))
	off += 4

	decoder, err := encoding.NewNumericDecoder(engine, base.header.Flag.ValueType)
	if err != nil {
		return nil, fmt.Errorf("xy-curve columns: %w", err)
	}

	column := count * decoder.Width()
	if len(payload)-off != 2*column {
		return nil, fmt.Errorf("xy-curve of %d samples needs %d column bytes, have %d: %w",
			count, 2*column, len(payload)-off, errs.ErrInvalidPayload)
	}

	if block.x, err = decoder.Decode(payload[off:off+column], count); err != nil {
		return nil, fmt.Errorf("xy-curve x column: %w", err)
	}

	if block.y, err = decoder.Decode(payload[off+column:], count); err != nil {
		return nil, fmt.Errorf("xy-curve y column: %w", err)
	}

	return block, nil
}

func decodeParameters(base blockBase, payload []byte) (*ParameterBlock, error) {
	engine := base.header.Engine()
	if len(payload) < 2 {
		return nil, fmt.Errorf("parameter count: %w", errs.ErrInvalidPayload)
	}

	count := int(engine.Uint16(payload[0:2]))
	off := 2

	decoder, err := encoding.NewNumericDecoder(engine, format.TypeFloat64)
	if err != nil {
		return nil, err
	}

	params := make([]Parameter, 0, count)
	for i := range count {
		var name string
		name, off, err = encoding.ReadVarString(payload, off)
		if err != nil {
			return nil, fmt.Errorf("parameter %d name: %w", i, err)
		}

		value, ok := decoder.At(payload[off:], 0, 1)
		if !ok {
			return nil, fmt.Errorf("parameter %q value: %w", name, errs.ErrInvalidPayload)
		}
		off += decoder.Width()

		params = append(params, Parameter{Name: name, Value: value})
	}

	if off != len(payload) {
		return nil, fmt.Errorf("%d trailing parameter bytes: %w", len(payload)-off, errs.ErrInvalidPayload)
	}

	return &ParameterBlock{blockBase: base, params: params}, nil
}
