package output

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/tdf"
)

type recordingWriter struct {
	title string
	calls int
}

func (w *recordingWriter) Name() string { return "recording" }

func (w *recordingWriter) Ext() string { return ".rec" }

func (w *recordingWriter) Write(_ tdf.Curve, stem string) (string, error) {
	w.calls++
	return stem + w.Ext(), nil
}

func TestLookup(t *testing.T) {
	t.Run("BuiltIns", func(t *testing.T) {
		w, err := Lookup(FormatROOT, WithTitle("t"), WithCompressionLevel(9))
		require.NoError(t, err)
		rw, ok := w.(*ROOTWriter)
		require.True(t, ok)
		require.Equal(t, "t", rw.Title)
		require.Equal(t, 9, rw.CompressionLevel)
		require.Equal(t, DefaultROOTKey, rw.Key)

		w, err = Lookup(FormatCSV, WithDelimiter(';'), WithPrecision(6))
		require.NoError(t, err)
		cw, ok := w.(*CSVWriter)
		require.True(t, ok)
		require.Equal(t, ';', cw.Delimiter)
		require.Equal(t, 6, cw.Precision)

		w, err = Lookup(FormatCSV)
		require.NoError(t, err)
		require.Equal(t, NewCSVWriter(), w)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Lookup("hdf5")
		require.ErrorIs(t, err, errs.ErrUnknownFormat)
	})

	t.Run("InvalidPrecision", func(t *testing.T) {
		_, err := Lookup(FormatCSV, WithPrecision(-2))
		require.Error(t, err)
	})
}

func TestRegister(t *testing.T) {
	rec := &recordingWriter{}
	Register("recording", func(s Settings) Writer {
		rec.title = s.Title
		return rec
	})
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, "recording")
		registryMu.Unlock()
	})

	require.Equal(t, []string{FormatCSV, "recording", FormatROOT, FormatXLSX}, Names())

	w, err := Lookup("recording", WithTitle("custom"))
	require.NoError(t, err)
	require.Equal(t, "custom", rec.title)

	path, err := w.Write(tdf.Curve{}, filepath.Join("out", "a"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("out", "a")+".rec", path)
	require.Equal(t, 1, rec.calls)
}
