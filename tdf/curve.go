package tdf

import (
	"fmt"

	"github.com/schottky-tools/tdfx/errs"
)

// Curve is the first xy-curve of a TDF file, decoded to float64 in file order.
//
// A Curve returned by Extract owns its slices; callers should treat it as
// read-only.
type Curve struct {
	Name  string
	XUnit string
	YUnit string
	X     []float64
	Y     []float64
}

// Len returns the number of complete (x, y) pairs.
func (c Curve) Len() int {
	return min(len(c.X), len(c.Y))
}

// Validate reports whether the curve can be turned into an artifact.
//
// Returns ErrEmptyCurve when either column is empty and ErrLengthMismatch when
// the columns differ in length.
func (c Curve) Validate() error {
	if len(c.X) == 0 || len(c.Y) == 0 {
		return errs.ErrEmptyCurve
	}

	if len(c.X) != len(c.Y) {
		return fmt.Errorf("%d x values, %d y values: %w", len(c.X), len(c.Y), errs.ErrLengthMismatch)
	}

	return nil
}
