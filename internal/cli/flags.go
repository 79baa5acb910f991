package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

const usageHeader = `usage: tdfextractor <filenames...> [-o|--outdir DIR] [-r|--root] [-c|--csv] [-x|--xlsx]

Extract the first xy-curve of each TDF file into a ROOT histogram, a CSV file
or a spreadsheet named after the input. Filenames may be glob patterns such as
'runs/**/*.tdf'.

ROOT histograms span the first to the last x sample, so -r requires the
first x to be smaller than the last; single-sample and descending sweeps
are rejected.

`

// Options is a parsed command line.
type Options struct {
	Files  []string
	Config Config
}

type flagValues struct {
	outDir   string
	root     bool
	csv      bool
	xlsx     bool
	title    string
	config   string
	lastOnly bool
}

func newFlagSet(v *flagValues, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("tdfextractor", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&v.outDir, "o", ".", "output directory")
	fs.StringVar(&v.outDir, "outdir", ".", "output directory")
	fs.BoolVar(&v.root, "r", false, "write a ROOT histogram (x must increase from first to last sample)")
	fs.BoolVar(&v.root, "root", false, "write a ROOT histogram (x must increase from first to last sample)")
	fs.BoolVar(&v.csv, "c", false, "write a CSV file")
	fs.BoolVar(&v.csv, "csv", false, "write a CSV file")
	fs.BoolVar(&v.xlsx, "x", false, "write an XLSX spreadsheet")
	fs.BoolVar(&v.xlsx, "xlsx", false, "write an XLSX spreadsheet")
	fs.StringVar(&v.title, "t", "", "histogram title")
	fs.StringVar(&v.title, "title", "", "histogram title")
	fs.StringVar(&v.config, "config", "", "YAML config file")
	fs.BoolVar(&v.lastOnly, "last-only", false, "extract every file but only write the last one")

	// glog registers its flags on the default set.
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		if fs.Lookup(f.Name) == nil {
			fs.Var(f.Value, f.Name, f.Usage)
		}
	})

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageHeader)
		fs.PrintDefaults()
	}

	return fs
}

// ParseArgs parses args, allowing flags before, between and after file
// names. Everything after "--" is a file name.
//
// Returns flag.ErrHelp when help was requested.
func ParseArgs(args []string, stderr io.Writer) (Options, error) {
	var v flagValues
	fs := newFlagSet(&v, stderr)

	var files []string
	rest := args
	for len(rest) > 0 {
		before := len(rest)
		if err := fs.Parse(rest); err != nil {
			return Options{}, err
		}
		rest = fs.Args()

		// flag stops after "--" and drops it, the remainder is positional.
		consumed := args[len(args)-before : len(args)-len(rest)]
		if len(consumed) > 0 && consumed[len(consumed)-1] == "--" {
			files = append(files, rest...)
			break
		}

		if len(rest) > 0 {
			files = append(files, rest[0])
			rest = rest[1:]
		}
	}

	if len(files) == 0 {
		fs.Usage()
		return Options{}, errors.New("at least one filename is required")
	}

	cfg := DefaultConfig()
	if v.config != "" {
		var err error
		if cfg, err = LoadConfig(v.config); err != nil {
			return Options{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o", "outdir":
			cfg.OutDir = v.outDir
		case "r", "root":
			cfg.ROOT = v.root
		case "c", "csv":
			cfg.CSV = v.csv
		case "x", "xlsx":
			cfg.XLSX = v.xlsx
		case "t", "title":
			cfg.Title = v.title
		case "last-only":
			cfg.LastOnly = v.lastOnly
		}
	})

	return Options{Files: files, Config: cfg}, nil
}
