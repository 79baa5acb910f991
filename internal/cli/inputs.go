package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// missingInputError reports an input that names no existing file.
type missingInputError struct {
	path string
}

func (e *missingInputError) Error() string {
	return "File not found: " + e.path
}

// resolveInputs checks every argument before any work starts. Arguments that
// exist are kept as given; arguments with glob meta characters are expanded
// with ** support and must match at least one file.
func resolveInputs(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		_, err := os.Stat(arg)
		if err == nil {
			files = append(files, arg)
			continue
		}

		if !errors.Is(err, os.ErrNotExist) || !hasMeta(arg) {
			return nil, &missingInputError{path: arg}
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", arg, err)
		}

		if len(matches) == 0 {
			return nil, &missingInputError{path: arg}
		}

		slices.Sort(matches)
		files = append(files, matches...)
	}

	return files, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
