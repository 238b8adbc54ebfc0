package cmd

import (
	"fmt"
	"os"

	"github.com/mnmnc/lox/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cfg holds the .loxrc.yaml-sourced defaults, loaded once in init() and
// consulted by each subcommand's flag registration so a flag's default
// is "whatever the config file says" rather than a hardcoded literal.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lox",
	Short: "A tree-walking interpreter for Lox",
	Long: `lox is a Go implementation of the Lox scripting language.

Lox is a small, dynamically-typed, object-oriented language with:
  - Classes with single inheritance
  - First-class functions and closures
  - Numbers, strings, booleans, and nil

It can run a script file, evaluate an inline expression, or drop into
an interactive REPL.`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runDefault,
}

// runDefault implements spec.md §6's literal CLI contract when lox is
// invoked with no subcommand name: zero arguments starts the REPL, one
// argument runs that file, and more than one is a usage error (exit
// 64). "run"/"repl"/"lex"/"parse"/"ast"/"version" remain available as
// explicit subcommands for debugging.
func runDefault(c *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return runRepl(c, args)
	case 1:
		return runScript(c, args)
	default:
		fmt.Fprintln(os.Stdout, "Error: usage: lox [script]")
		os.Exit(64)
		return nil
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		loaded = config.Default()
	}
	cfg = loaded

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
