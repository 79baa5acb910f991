// Command tdfextractor converts the xy-curve of TDF files to ROOT or CSV.
package main

import (
	"os"

	"github.com/schottky-tools/tdfx/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
