package output

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/schottky-tools/tdfx/errs"
	"github.com/schottky-tools/tdfx/internal/options"
	"github.com/schottky-tools/tdfx/tdf"
)

// Built-in format names.
const (
	FormatROOT = "root"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer persists a curve in one output format.
type Writer interface {
	// Name returns the format name used for lookup.
	Name() string
	// Ext returns the file extension including the leading dot.
	Ext() string
	// Write stores c at stem+Ext() and returns the written path.
	Write(c tdf.Curve, stem string) (string, error)
}

// Settings carries the format-independent knobs a Factory may honor.
type Settings struct {
	Title            string
	Delimiter        rune
	Precision        int
	CompressionLevel int
}

// Option configures the Settings passed to a Factory.
type Option = options.Option[*Settings]

// WithTitle sets the artifact title. Formats without a title ignore it.
func WithTitle(title string) Option {
	return options.NoError(func(s *Settings) {
		s.Title = title
	})
}

// WithDelimiter sets the column delimiter of text formats.
func WithDelimiter(delim rune) Option {
	return options.NoError(func(s *Settings) {
		s.Delimiter = delim
	})
}

// WithPrecision sets the number of digits after the decimal point of text
// formats, -1 for the shortest round-trip representation.
func WithPrecision(precision int) Option {
	return options.New(func(s *Settings) error {
		if precision < -1 {
			return fmt.Errorf("precision %d must be -1 or non-negative", precision)
		}
		s.Precision = precision

		return nil
	})
}

// WithCompressionLevel sets the compression level of binary formats.
func WithCompressionLevel(level int) Option {
	return options.NoError(func(s *Settings) {
		s.CompressionLevel = level
	})
}

// Factory creates a configured Writer.
type Factory func(s Settings) Writer

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		FormatROOT: func(s Settings) Writer {
			w := NewROOTWriter(s.Title)
			w.CompressionLevel = s.CompressionLevel

			return w
		},
		FormatXLSX: func(s Settings) Writer {
			return NewXLSXWriter(s.Title)
		},
		FormatCSV: func(s Settings) Writer {
			w := NewCSVWriter()
			w.Delimiter = s.Delimiter
			w.Precision = s.Precision

			return w
		},
	}
)

func defaultSettings() Settings {
	return Settings{
		Delimiter:        DefaultCSVDelimiter,
		Precision:        DefaultCSVPrecision,
		CompressionLevel: DefaultROOTCompressionLevel,
	}
}

// Register adds or replaces the factory for name.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = f
}

// Lookup creates the writer registered under name.
//
// Returns ErrUnknownFormat when no writer is registered under name.
func Lookup(name string, opts ...Option) (Writer, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%q: %w", name, errs.ErrUnknownFormat)
	}

	s := defaultSettings()
	if err := options.Apply(&s, opts...); err != nil {
		return nil, err
	}

	return f(s), nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return slices.Sorted(maps.Keys(registry))
}
