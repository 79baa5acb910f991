// Package output persists extracted curves as ROOT histograms, delimited
// text or spreadsheets.
//
// Each format is a Writer found by name through Lookup:
//
//	w, err := output.Lookup(output.FormatROOT, output.WithTitle("IV @ 300K"))
//	if err != nil {
//	    return err
//	}
//	path, err := w.Write(curve, "out/sample")  // writes out/sample.root
//
// A ROOT artifact holds one TH1F under the key "th1f" with one bin per y
// sample over [x0, xN-1]. A CSV artifact holds "x|y" rows in exponent
// notation. An XLSX artifact holds a header row and one row per sample.
package output
