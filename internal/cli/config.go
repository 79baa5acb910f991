package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/schottky-tools/tdfx/output"
)

// Config holds every setting of a run. It is filled from defaults, then an
// optional YAML file, then explicitly set flags.
type Config struct {
	OutDir           string `yaml:"outdir"`
	ROOT             bool   `yaml:"root"`
	CSV              bool   `yaml:"csv"`
	XLSX             bool   `yaml:"xlsx"`
	Title            string `yaml:"title"`
	LastOnly         bool   `yaml:"last_only"`
	CompressionLevel int    `yaml:"compression_level"`
	Delimiter        string `yaml:"delimiter"`
	Precision        int    `yaml:"precision"`
}

// DefaultConfig returns the settings used when neither a file nor a flag
// overrides them.
func DefaultConfig() Config {
	return Config{
		OutDir:           ".",
		Title:            "",
		CompressionLevel: output.DefaultROOTCompressionLevel,
		Delimiter:        string(output.DefaultCSVDelimiter),
		Precision:        output.DefaultCSVPrecision,
	}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Formats returns the names of the selected output formats.
func (c Config) Formats() []string {
	var names []string
	if c.ROOT {
		names = append(names, output.FormatROOT)
	}
	if c.CSV {
		names = append(names, output.FormatCSV)
	}
	if c.XLSX {
		names = append(names, output.FormatXLSX)
	}

	return names
}

// WriterOptions translates the config into output writer options.
func (c Config) WriterOptions() ([]output.Option, error) {
	delim, size := utf8.DecodeRuneInString(c.Delimiter)
	if delim == utf8.RuneError || size != len(c.Delimiter) {
		return nil, fmt.Errorf("delimiter %q must be a single character", c.Delimiter)
	}

	return []output.Option{
		output.WithTitle(c.Title),
		output.WithDelimiter(delim),
		output.WithPrecision(c.Precision),
		output.WithCompressionLevel(c.CompressionLevel),
	}, nil
}
