package cmd

import (
	"fmt"
	"os"

	"github.com/mnmnc/lox/internal/lexer"
	"github.com/mnmnc/lox/internal/parser"
	"github.com/mnmnc/lox/internal/resolver"
	"github.com/spf13/cobra"
)

var resolveOnly bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file or expression and print the resulting AST",
	Long: `Parse (and by default resolve) a Lox program without executing it,
printing the source-like rendering of the resulting AST.

Examples:
  # Parse a script file
  lox parse script.lox

  # Parse an inline expression
  lox parse -e "1 + 2 * 3;"

  # Skip the resolver pass
  lox parse --no-resolve script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&resolveOnly, "no-resolve", false, "skip the resolver pass")
}

func parseScript(_ *cobra.Command, args []string) error {
	var input string

	switch {
	case evalExpr != "":
		input = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stdout, e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if !resolveOnly {
		r := resolver.New()
		r.Resolve(program)
		if errs := r.Errors(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stdout, e)
			}
			return fmt.Errorf("resolving failed with %d error(s)", len(errs))
		}
	}

	fmt.Print(program.String())
	return nil
}
