// Command vesper is the command-line front end for the Vesper type
// inference engine: lexing, parsing, and constraint-graph inference
// over Vesper source.
package main

import (
	"os"

	"github.com/vesperlang/vesper/cmd/vesper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
