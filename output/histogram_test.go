package output

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/tdf"
)

func TestNewHistogram(t *testing.T) {
	t.Run("Bins", func(t *testing.T) {
		c := tdf.Curve{X: []float64{0, 1, 2, 3}, Y: []float64{10, 20, 30, 40}}

		h, err := NewHistogram(c, "iv")
		require.NoError(t, err)
		require.Equal(t, "iv", h.Title)
		require.Equal(t, 4, h.Bins)
		require.Equal(t, 0.0, h.XMin)
		require.Equal(t, 3.0, h.XMax)
		require.Equal(t, []float64{0, 10, 20, 30, 40, 0}, h.Values)
		require.Equal(t, 0.75, h.BinWidth())
		require.Equal(t, 30.0, h.Content(2))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewHistogram(tdf.Curve{}, "")
		require.ErrorIs(t, err, errs.ErrEmptyCurve)
	})

	t.Run("SingleSample", func(t *testing.T) {
		_, err := NewHistogram(tdf.Curve{X: []float64{1}, Y: []float64{2}}, "")
		require.ErrorIs(t, err, errs.ErrInvalidAxisRange)
	})

	t.Run("Descending", func(t *testing.T) {
		_, err := NewHistogram(tdf.Curve{X: []float64{3, 2, 1}, Y: []float64{1, 2, 3}}, "")
		require.ErrorIs(t, err, errs.ErrInvalidAxisRange)
	})
}

func TestHistogramH1D(t *testing.T) {
	c := tdf.Curve{X: []float64{-1, 0, 1}, Y: []float64{5, -2, 7}}

	h, err := NewHistogram(c, "title")
	require.NoError(t, err)

	h1 := h.H1D("th1f")
	require.Equal(t, 3, h1.Len())
	require.Equal(t, -1.0, h1.XMin())
	require.Equal(t, 1.0, h1.XMax())
	for i, want := range c.Y {
		require.Equal(t, want, h1.Value(i))
	}
	require.Equal(t, "th1f", h1.Annotation()["name"])
	require.Equal(t, "title", h1.Annotation()["title"])
}
