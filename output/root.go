package output

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"

	"github.com/schottky-tools/tdfx/tdf"
)

const (
	// DefaultROOTKey is the key the histogram is stored under.
	DefaultROOTKey = "th1f"
	// DefaultROOTCompressionLevel is the zlib level of written ROOT files.
	DefaultROOTCompressionLevel = 4
)

// ROOTWriter stores a curve as a single-precision 1D histogram (TH1F) in a
// ROOT file.
type ROOTWriter struct {
	// Title is the histogram title.
	Title string
	// Key is the name of the histogram inside the file.
	Key string
	// CompressionLevel is the zlib level, 1-9.
	CompressionLevel int
}

var _ Writer = (*ROOTWriter)(nil)

// NewROOTWriter creates a ROOT writer with the default key and compression.
func NewROOTWriter(title string) *ROOTWriter {
	return &ROOTWriter{
		Title:            title,
		Key:              DefaultROOTKey,
		CompressionLevel: DefaultROOTCompressionLevel,
	}
}

func (w *ROOTWriter) Name() string { return FormatROOT }

func (w *ROOTWriter) Ext() string { return ".root" }

// Write stores c at stem+".root", replacing any existing file, and returns
// the path.
func (w *ROOTWriter) Write(c tdf.Curve, stem string) (string, error) {
	h, err := NewHistogram(c, w.Title)
	if err != nil {
		return "", err
	}

	key := w.Key
	if key == "" {
		key = DefaultROOTKey
	}

	level := w.CompressionLevel
	if level < 1 || level > 9 {
		level = DefaultROOTCompressionLevel
	}

	path := stem + w.Ext()
	if err := writeROOT(path, key, rhist.NewH1FFrom(h.H1D(key)), level); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

func writeROOT(path, key string, hist rhist.H1, level int) (err error) {
	f, err := groot.Create(path, riofs.WithZlib(level))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return f.Put(key, hist)
}
