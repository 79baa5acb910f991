// Package tdfx extracts measurement curves from TDF files and converts them
// to ROOT histograms, delimited text or spreadsheets.
//
// A TDF file is a BDIO block stream: a sequence of blocks, each a 24-byte
// header followed by an optionally compressed payload. The measured curve is
// the first block tagged as an xy-curve, holding two parallel columns of
// samples plus a name and units.
//
// # Core Features
//
//   - Block directory for direct access, rebuilt by scanning when absent
//   - Float64, Float32, Int32 and Int16 sample columns
//   - Optional payload compression (Zlib, Zstd, S2, LZ4, XZ), decoded within
//     the size recorded in the block header
//   - xxHash64 payload checksums
//   - ROOT TH1F, CSV and XLSX output
//
// # Basic Usage
//
// Converting a file:
//
//	paths, err := tdfx.Convert("run42.tdf", "out/run42.tdf", output.FormatROOT, output.FormatCSV)
//
// Reading the curve only:
//
//	curve, err := tdfx.Extract("run42.tdf")
//	for i := range curve.Len() {
//	    fmt.Println(curve.X[i], curve.Y[i])
//	}
//
// Writing a TDF file:
//
//	w, _ := tdfx.NewWriter(bdio.WithCompression(format.CompressionZstd))
//	_ = w.AddXYCurve("iv", "V", "A", x, y)
//	err := w.WriteFile("run42.tdf")
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the packages directly:
//
//   - bdio: block stream reader and writer
//   - tdf: xy-curve extraction
//   - output: ROOT and CSV writers
//   - section, format, encoding, compress: wire format building blocks
package tdfx

import (
	"github.com/schottky-tools/tdfx/bdio"
	"github.com/schottky-tools/tdfx/format"
	"github.com/schottky-tools/tdfx/output"
	"github.com/schottky-tools/tdfx/tdf"
)

var defaultWriterOptions = []bdio.WriterOption{
	bdio.WithBigEndian(),
	bdio.WithValueType(format.TypeFloat64),
	bdio.WithCompression(format.CompressionNone),
	bdio.WithChecksum(true),
	bdio.WithDirectory(true),
}

// Extract returns the first xy-curve of the TDF file at path.
//
// Returns errs.ErrBlockNotFound when the file has no xy-curve block.
func Extract(path string, opts ...bdio.ReaderOption) (tdf.Curve, error) {
	return tdf.ExtractFile(path, opts...)
}

// Convert extracts the curve of the TDF file at path and writes it once per
// format under stem, e.g. stem+".root".
//
// Parameters:
//   - path: TDF file to read
//   - stem: Output path without extension
//   - formats: Registered output format names, see output.Names
//
// Returns:
//   - []string: Written paths in format order
//   - error: Lookup, extraction or write error; earlier outputs are kept
func Convert(path, stem string, formats ...string) ([]string, error) {
	writers := make([]output.Writer, 0, len(formats))
	for _, name := range formats {
		w, err := output.Lookup(name)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}

	curve, err := tdf.ExtractFile(path)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(writers))
	for _, w := range writers {
		p, err := w.Write(curve, stem)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}

	return paths, nil
}

// NewWriter creates a BDIO writer.
//
// Without options it writes big-endian float64 columns, uncompressed, with
// checksums and a leading directory block. Options are applied after these
// defaults.
func NewWriter(opts ...bdio.WriterOption) (*bdio.Writer, error) {
	return bdio.NewWriter(append(defaultWriterOptions[:len(defaultWriterOptions):len(defaultWriterOptions)], opts...)...)
}
