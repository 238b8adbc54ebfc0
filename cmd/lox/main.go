// Command lox is a tree-walking interpreter for the Lox language.
package main

import (
	"os"

	"github.com/mnmnc/lox/cmd/lox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
