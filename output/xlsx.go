package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/schottky-tools/tdfx/tdf"
)

// DefaultXLSXSheet is the worksheet the curve is written to.
const DefaultXLSXSheet = "curve"

// XLSXWriter stores a curve as a two-column spreadsheet with a header row
// naming the columns and their units.
type XLSXWriter struct {
	// Title is stored in the workbook properties.
	Title string
	// Sheet is the worksheet name.
	Sheet string
}

var _ Writer = (*XLSXWriter)(nil)

// NewXLSXWriter creates a spreadsheet writer with the default sheet name.
func NewXLSXWriter(title string) *XLSXWriter {
	return &XLSXWriter{Title: title, Sheet: DefaultXLSXSheet}
}

func (w *XLSXWriter) Name() string { return FormatXLSX }

func (w *XLSXWriter) Ext() string { return ".xlsx" }

// Write stores the first min(len(x), len(y)) samples of c at stem+".xlsx",
// replacing any existing file, and returns the path. Non-finite samples are
// stored as the text "nan", "inf" or "-inf".
func (w *XLSXWriter) Write(c tdf.Curve, stem string) (string, error) {
	path := stem + w.Ext()

	f := excelize.NewFile()
	defer f.Close()

	if err := w.fill(f, c); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

func (w *XLSXWriter) fill(f *excelize.File, c tdf.Curve) error {
	sheet := w.Sheet
	if sheet == "" {
		sheet = DefaultXLSXSheet
	}

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: w.Title, Subject: c.Name}); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := []any{columnHeader("x", c.XUnit), columnHeader("y", c.YUnit)}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i := range c.Len() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := sw.SetRow(cell, []any{cellValue(c.X[i]), cellValue(c.Y[i])}); err != nil {
			return err
		}
	}

	return sw.Flush()
}

func columnHeader(axis, unit string) string {
	if unit == "" {
		return axis
	}

	return axis + " [" + unit + "]"
}

func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatValue(v, -1)
	}

	return v
}

// ReadXLSX reads the first worksheet of a file written by XLSXWriter.
func ReadXLSX(path string) (tdf.Curve, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return tdf.Curve{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return tdf.Curve{}, fmt.Errorf("read %s: %w", path, err)
	}

	var c tdf.Curve
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) != 2 {
			return tdf.Curve{}, fmt.Errorf("read %s: row %d has %d cells", path, i+1, len(row))
		}

		x, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return tdf.Curve{}, fmt.Errorf("read %s: row %d: %w", path, i+1, err)
		}

		y, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return tdf.Curve{}, fmt.Errorf("read %s: row %d: %w", path, i+1, err)
		}

		c.X = append(c.X, x)
		c.Y = append(c.Y, y)
	}

	return c, nil
}
