package output

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schottky-tools/tdfx/tdf"
)

func TestCSVWriter(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		stem := filepath.Join(t.TempDir(), "sample")
		c := tdf.Curve{X: []float64{1, -0.5}, Y: []float64{0.25, 1024}}

		w := NewCSVWriter()
		require.Equal(t, FormatCSV, w.Name())

		path, err := w.Write(c, stem)
		require.NoError(t, err)
		require.Equal(t, stem+".csv", path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t,
			"1.000000000000000000e+00|2.500000000000000000e-01\n"+
				"-5.000000000000000000e-01|1.024000000000000000e+03\n",
			string(data))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		stem := filepath.Join(t.TempDir(), "sample")
		c := tdf.Curve{
			X: []float64{-1.5, 0, 1.0 / 3, math.Pi, 1e300},
			Y: []float64{2e-15, -7, math.Inf(1), math.Inf(-1), 0.1},
		}

		path, err := NewCSVWriter().Write(c, stem)
		require.NoError(t, err)

		got, err := ReadCSV(path, DefaultCSVDelimiter)
		require.NoError(t, err)
		require.Equal(t, c.X, got.X)
		require.Equal(t, c.Y, got.Y)
	})

	t.Run("NaN", func(t *testing.T) {
		stem := filepath.Join(t.TempDir(), "sample")
		c := tdf.Curve{X: []float64{1}, Y: []float64{math.NaN()}}

		path, err := NewCSVWriter().Write(c, stem)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "1.000000000000000000e+00|nan\n", string(data))

		got, err := ReadCSV(path, DefaultCSVDelimiter)
		require.NoError(t, err)
		require.True(t, math.IsNaN(got.Y[0]))
	})

	t.Run("ShorterColumnWins", func(t *testing.T) {
		stem := filepath.Join(t.TempDir(), "sample")
		c := tdf.Curve{X: []float64{1, 2, 3}, Y: []float64{4, 5}}

		path, err := NewCSVWriter().Write(c, stem)
		require.NoError(t, err)

		got, err := ReadCSV(path, DefaultCSVDelimiter)
		require.NoError(t, err)
		require.Equal(t, []float64{1, 2}, got.X)
		require.Equal(t, []float64{4, 5}, got.Y)
	})

	t.Run("Options", func(t *testing.T) {
		stem := filepath.Join(t.TempDir(), "sample")
		w := &CSVWriter{Delimiter: ',', Precision: -1}

		path, err := w.Write(tdf.Curve{X: []float64{0.25}, Y: []float64{3}}, stem)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "2.5e-01,3e+00\n", string(data))
	})

	t.Run("Overwrite", func(t *testing.T) {
		stem := filepath.Join(t.TempDir(), "sample")
		require.NoError(t, os.WriteFile(stem+".csv", []byte("old|content\nmore|rows\nthan|now\n"), 0o600))

		path, err := NewCSVWriter().Write(tdf.Curve{X: []float64{1}, Y: []float64{2}}, stem)
		require.NoError(t, err)

		got, err := ReadCSV(path, DefaultCSVDelimiter)
		require.NoError(t, err)
		require.Len(t, got.X, 1)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		_, err := NewCSVWriter().Write(tdf.Curve{X: []float64{1}, Y: []float64{2}},
			filepath.Join(t.TempDir(), "missing", "sample"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestReadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("1|abc\n"), 0o600))
	_, err := ReadCSV(bad, '|')
	require.Error(t, err)

	wide := filepath.Join(dir, "wide.csv")
	require.NoError(t, os.WriteFile(wide, []byte("1|2|3\n"), 0o600))
	_, err = ReadCSV(wide, '|')
	require.Error(t, err)

	_, err = ReadCSV(filepath.Join(dir, "missing.csv"), '|')
	require.ErrorIs(t, err, os.ErrNotExist)
}
