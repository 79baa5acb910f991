// Package cli implements the tdfextractor command.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/schottky-tools/tdfx/output"
	"github.com/schottky-tools/tdfx/tdf"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Run executes the command with args, excluding the program name, and returns
// the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	defer glog.Flush()

	opts, err := ParseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	files, err := resolveInputs(opts.Files)
	var missing *missingInputError
	if errors.As(err, &missing) {
		glog.Errorf("input %s does not exist", missing.path)
		fmt.Fprintln(stdout, missing)

		return ExitError
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	opts.Files = files
	glog.V(1).Infof("%d input files", len(files))

	formats := opts.Config.Formats()
	if len(formats) == 0 {
		fmt.Fprintln(stdout, "Please specify output format.")
		return ExitOK
	}

	if !opts.Config.LastOnly {
		if err := checkStems(opts.Config.OutDir, opts.Files); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
	}

	writers, err := newWriters(opts.Config, formats)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	if err := os.MkdirAll(opts.Config.OutDir, 0o755); err != nil {
		glog.Errorf("create output directory: %v", err)
		fmt.Fprintln(stderr, err)

		return ExitError
	}

	if err := convert(opts, writers); err != nil {
		glog.Error(err)
		fmt.Fprintln(stderr, err)

		return ExitError
	}

	return ExitOK
}

func newWriters(cfg Config, formats []string) ([]output.Writer, error) {
	wopts, err := cfg.WriterOptions()
	if err != nil {
		return nil, err
	}

	writers := make([]output.Writer, 0, len(formats))
	for _, name := range formats {
		w, err := output.Lookup(name, wopts...)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}

	return writers, nil
}

// convert extracts every input. Each curve is written next to the others
// under its input's base name, unless LastOnly keeps only the last one.
func convert(opts Options, writers []output.Writer) error {
	var (
		last     tdf.Curve
		lastStem string
	)

	for _, path := range opts.Files {
		glog.V(1).Infof("extracting %s", path)

		c, err := tdf.ExtractFile(path)
		if err != nil {
			return err
		}
		glog.V(1).Infof("%s: curve %q with %d samples", path, c.Name, c.Len())

		stem := outputStem(opts.Config.OutDir, path)
		if opts.Config.LastOnly {
			last, lastStem = c, stem
			continue
		}

		if err := write(c, stem, writers); err != nil {
			return err
		}
	}

	if opts.Config.LastOnly {
		return write(last, lastStem, writers)
	}

	return nil
}

func write(c tdf.Curve, stem string, writers []output.Writer) error {
	for _, w := range writers {
		path, err := w.Write(c, stem)
		if err != nil {
			return fmt.Errorf("%s output: %w", w.Name(), err)
		}
		glog.Infof("wrote %s", path)
	}

	return nil
}

// outputStem is outdir joined with the input's base name, extension kept.
func outputStem(outDir, input string) string {
	return filepath.Join(outDir, filepath.Base(input))
}

// checkStems rejects distinct inputs that would write the same artifacts,
// such as equally named files from different directories.
func checkStems(outDir string, files []string) error {
	seen := make(map[string]string, len(files))
	for _, path := range files {
		stem := outputStem(outDir, path)
		prev, ok := seen[stem]
		if ok && filepath.Clean(prev) != filepath.Clean(path) {
			return fmt.Errorf("inputs %s and %s both write %s.*; use --last-only or rename one", prev, path, stem)
		}
		seen[stem] = path
	}

	return nil
}
