package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/schottky-tools/tdfx/tdf"
)

const (
	// DefaultCSVDelimiter separates the x and y columns.
	DefaultCSVDelimiter = '|'
	// DefaultCSVPrecision gives 18 digits after the decimal point in
	// exponent notation, e.g. 1.000000000000000000e+00.
	DefaultCSVPrecision = 18
)

// CSVWriter stores a curve as delimited text, one "x<delim>y" row per sample
// without a header.
type CSVWriter struct {
	// Delimiter separates the columns.
	Delimiter rune
	// Precision is the number of mantissa digits after the decimal point;
	// -1 selects the shortest representation that round-trips.
	Precision int
}

var _ Writer = (*CSVWriter)(nil)

// NewCSVWriter creates a CSV writer with the default delimiter and precision.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{
		Delimiter: DefaultCSVDelimiter,
		Precision: DefaultCSVPrecision,
	}
}

func (w *CSVWriter) Name() string { return FormatCSV }

func (w *CSVWriter) Ext() string { return ".csv" }

// Write stores the first min(len(x), len(y)) samples of c at stem+".csv",
// replacing any existing file, and returns the path.
func (w *CSVWriter) Write(c tdf.Curve, stem string) (string, error) {
	path := stem + w.Ext()

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := w.encode(f, c); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

func (w *CSVWriter) encode(dst io.Writer, c tdf.Curve) error {
	cw := csv.NewWriter(dst)
	cw.Comma = w.Delimiter

	record := make([]string, 2)
	for i := range c.Len() {
		record[0] = formatValue(c.X[i], w.Precision)
		record[1] = formatValue(c.Y[i], w.Precision)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// formatValue spells non-finite values the way numpy text files do so both
// readers accept them.
func formatValue(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'e', precision, 64)
	}
}

// ReadCSV reads a two-column delimited file written by CSVWriter.
func ReadCSV(path string, delim rune) (tdf.Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return tdf.Curve{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = 2
	r.ReuseRecord = true

	var c tdf.Curve
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return c, nil
		}
		if err != nil {
			return tdf.Curve{}, fmt.Errorf("read %s: %w", path, err)
		}

		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return tdf.Curve{}, fmt.Errorf("read %s: %w", path, err)
		}

		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return tdf.Curve{}, fmt.Errorf("read %s: %w", path, err)
		}

		c.X = append(c.X, x)
		c.Y = append(c.Y, y)
	}
}
