// Command conec drives the semantic middle-end over a named, hand-
// built IR fixture (see internal/fixtures): lexing and parsing a real
// source file is out of this module's scope, so the fixture name
// stands in for source input at the command line.
package main

import (
	"os"

	"github.com/conelang/conesema/cmd/conec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
