// Package tdf extracts measurement curves from TDF files.
//
// A TDF file is a BDIO stream. The measured curve is the first block tagged as
// an xy-curve; every other block is ignored.
package tdf

import (
	"fmt"

	"github.com/schottky-tools/tdfx/bdio"
	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/section"
)

// ExtractFile opens the TDF file at path and returns its first xy-curve.
//
// Parameters:
//   - path: TDF file to read
//   - opts: Reader options, e.g. bdio.WithChecksumVerification(false)
//
// Returns:
//   - Curve: The decoded curve
//   - error: ErrBlockNotFound when the file has no xy-curve block, or a wrapped
//     open/decode error
func ExtractFile(path string, opts ...bdio.ReaderOption) (Curve, error) {
	r, err := bdio.Open(path, opts...)
	if err != nil {
		return Curve{}, err
	}
	defer r.Close()

	c, err := Extract(r)
	if err != nil {
		return Curve{}, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Extract returns the first xy-curve of the stream read by r.
func Extract(r *bdio.Reader) (Curve, error) {
	dir, err := r.Directory()
	if err != nil {
		return Curve{}, err
	}

	entry, ok := FindFirst(dir, format.TagXYCurve)
	if !ok {
		return Curve{}, errs.ErrBlockNotFound
	}

	if err := r.SeekBlock(entry.Pos); err != nil {
		return Curve{}, err
	}

	block, err := r.NextBlock()
	if err != nil {
		return Curve{}, err
	}

	xy, ok := block.(*bdio.XYCurveBlock)
	if !ok {
		return Curve{}, fmt.Errorf("directory points at %s block at %d: %w", block.Tag(), entry.Pos, errs.ErrInvalidPayload)
	}

	return Curve{
		Name:  xy.Name(),
		XUnit: xy.XUnit(),
		YUnit: xy.YUnit(),
		X:     xy.XValues(),
		Y:     xy.YValues(),
	}, nil
}

// FindFirst returns the first entry with the given tag.
func FindFirst(entries []section.DirectoryEntry, tag format.BlockTag) (section.DirectoryEntry, bool) {
	for _, e := range entries {
		if e.Tag == tag {
			return e, true
		}
	}

	return section.DirectoryEntry{}, false
}
