package cmd

import (
	"fmt"
	"os"

	"github.com/mnmnc/lox/internal/astjson"
	"github.com/mnmnc/lox/internal/lexer"
	"github.com/mnmnc/lox/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	astQuery  string
	astRedact []string
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Dump a Lox program's AST as JSON",
	Long: `Parse a Lox program and print its AST as pretty-printed JSON.

Examples:
  # Dump the whole AST
  lox ast script.lox

  # Query a specific subtree (gjson path syntax)
  lox ast --query "statements.0.expression" script.lox

  # Redact literal payloads before sharing a dump in a bug report
  lox ast --redact "statements.0.expression.value" script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: dumpAst,
}

func init() {
	rootCmd.AddCommand(astCmd)

	astCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "dump the AST of inline code instead of reading from file")
	astCmd.Flags().StringVar(&astQuery, "query", "", "gjson path to extract a subtree instead of the whole AST")
	astCmd.Flags().StringArrayVar(&astRedact, "redact", nil, "sjson path to delete from the AST before printing (repeatable)")
}

func dumpAst(_ *cobra.Command, args []string) error {
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

	data, err := astjson.Marshal(program)
	if err != nil {
		return fmt.Errorf("failed to marshal AST: %w", err)
	}

	for _, path := range astRedact {
		data, err = sjson.DeleteBytes(data, path)
		if err != nil {
			return fmt.Errorf("failed to redact %q: %w", path, err)
		}
	}

	if astQuery != "" {
		result := gjson.GetBytes(data, astQuery)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing", astQuery)
		}
		data = []byte(result.Raw)
	}

	fmt.Println(string(pretty.Pretty(data)))
	return nil
}
