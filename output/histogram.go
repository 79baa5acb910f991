package output

import (
	"fmt"

	"go-hep.org/x/hep/hbook"

	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/tdf"
)

// Histogram is a fixed-width 1D histogram built from a curve.
//
// Values has Bins+2 entries: the underflow bin, one entry per y sample, and
// the overflow bin. Both flow bins are zero.
type Histogram struct {
	Title  string
	Bins   int
	XMin   float64
	XMax   float64
	Values []float64
}

// NewHistogram lays the y samples of c out as bins over [x0, xN-1].
//
// Returns:
//   - error: ErrEmptyCurve when c has no samples, ErrInvalidAxisRange when the
//     first x is not below the last
func NewHistogram(c tdf.Curve, title string) (Histogram, error) {
	if len(c.X) == 0 || len(c.Y) == 0 {
		return Histogram{}, errs.ErrEmptyCurve
	}

	xmin, xmax := c.X[0], c.X[len(c.X)-1]
	if !(xmin < xmax) {
		return Histogram{}, fmt.Errorf("axis [%g, %g]: %w", xmin, xmax, errs.ErrInvalidAxisRange)
	}

	values := make([]float64, len(c.Y)+2)
	copy(values[1:], c.Y)

	return Histogram{
		Title:  title,
		Bins:   len(c.Y),
		XMin:   xmin,
		XMax:   xmax,
		Values: values,
	}, nil
}

// BinWidth returns the width of one bin.
func (h Histogram) BinWidth() float64 {
	return (h.XMax - h.XMin) / float64(h.Bins)
}

// Content returns the value of in-range bin i, 0 <= i < Bins.
func (h Histogram) Content(i int) float64 {
	return h.Values[i+1]
}

// H1D converts the histogram to an hbook histogram named name. Each bin is
// filled once at its centre, weighted by its value.
func (h Histogram) H1D(name string) *hbook.H1D {
	h1 := hbook.NewH1D(h.Bins, h.XMin, h.XMax)
	width := h.BinWidth()
	for i := range h.Bins {
		h1.Fill(h.XMin+(float64(i)+0.5)*width, h.Content(i))
	}

	ann := h1.Annotation()
	ann["name"] = name
	ann["title"] = h.Title

	return h1
}
