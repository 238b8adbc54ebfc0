package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mnmnc/lox/internal/interp"
	"github.com/mnmnc/lox/internal/lexer"
	"github.com/mnmnc/lox/internal/parser"
	"github.com/mnmnc/lox/internal/resolver"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive Lox prompt",
	Long: `Read Lox source one line at a time, evaluating each line as a
whole program but keeping one global environment across lines — so a
variable declared on one line is visible on the next.

Type the literal "exit" to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl implements the "prompt mode" half of spec.md §6: it prints
// cfg.Prompt before each read, resets *had-error* for every line, and
// never terminates the loop on a static or runtime error — only on EOF
// or the literal input "exit".
func runRepl(_ *cobra.Command, _ []string) error {
	scanner := bufio.NewScanner(os.Stdin)
	globals := interp.New(nil, os.Stdout, "<repl>")

	for {
		fmt.Print(cfg.Prompt)
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}

		line := scanner.Text()
		if line == "exit" {
			return nil
		}

		l := lexer.New(line)
		p := parser.New(l)
		program := p.ParseProgram()

		if errs := l.Errors(); len(errs) > 0 {
			printEach(errs)
			continue
		}
		if errs := p.Errors(); len(errs) > 0 {
			printEach(errs)
			continue
		}

		r := resolver.New()
		r.Resolve(program)
		if errs := r.Errors(); len(errs) > 0 {
			printEach(errs)
			continue
		}

		globals.AddLocals(r.Locals())
		if err := globals.Interpret(program); err != nil {
			fmt.Fprintln(os.Stdout, err)
		}
	}
}

func printEach(errs []string) {
	for _, e := range errs {
		fmt.Fprintln(os.Stdout, e)
	}
}
