package cmd

import (
	"fmt"
	"os"

	"github.com/mnmnc/lox/internal/lexer"
	"github.com/mnmnc/lox/internal/token"
	"github.com/spf13/cobra"
)

var (
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file or expression",
	Long: `Tokenize (lex) a Lox program and print the resulting tokens.

This command is useful for debugging the scanner and understanding how
Lox source code is tokenized.

Examples:
  # Tokenize a script file
  lox lex script.lox

  # Tokenize an inline expression
  lox lex -e "var x = 42;"

  # Show token types and positions
  lox lex --show-type --show-pos script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case evalExpr != "":
		input, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)
	tokenCount := 0

	for {
		tok := l.NextToken()
		if onlyErrors && tok.Type != token.ILLEGAL {
			if tok.Type == token.EOF {
				break
			}
			continue
		}

		tokenCount++
		printToken(tok)

		if tok.Type == token.EOF {
			break
		}
	}

	errs := l.Errors()
	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if len(errs) > 0 {
			fmt.Printf("Errors: %d\n", len(errs))
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stdout, e)
		}
		return fmt.Errorf("found %d scan error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}

	switch {
	case tok.Type == token.EOF:
		output += " EOF"
	case tok.Lexeme == "":
		output += fmt.Sprintf(" %s", tok.Type)
	default:
		output += fmt.Sprintf(" %q", tok.Lexeme)
	}

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}

	fmt.Println(output)
}
