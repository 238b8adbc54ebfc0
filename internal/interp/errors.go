package interp

import (
	"fmt"
	"strconv"

	lerr "github.com/mnmnc/lox/internal/errors"
)

// returnSignal unwinds a Function.Call through however many blocks
// separate a "return" statement from the call boundary. It is always
// caught in Function.Call and must never be observed as a Go error
// (spec.md §4.4, "Return", and §9 "Return-by-unwinding").
type returnSignal struct{ Value Value }

// RuntimeError is the one error kind the evaluator itself raises.
// Stack holds the call frames active when the error occurred; with a
// single frame (or none — a top-level error) Error() falls back to
// spec.md §6's plain "<msg> [line \"N\"]" form, and grows a multi-line
// trace only when the error actually occurred inside nested calls.
type RuntimeError struct {
	Line    int
	Message string
	Stack   lerr.StackTrace
}

func (e *RuntimeError) Error() string {
	if len(e.Stack) <= 1 {
		return fmt.Sprintf("%s [line %q]", e.Message, strconv.Itoa(e.Line))
	}
	return e.Message + "\n" + e.Stack.String()
}
