// dpread prints, lists and exports the CSV resources of data packages.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/openclimatedata/datapackage/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(3)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
