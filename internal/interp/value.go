package interp

import (
	"fmt"
	"strconv"
)

// Value is any Lox runtime value: Nil, Bool, Number, String, or
// something Callable (a Function, a Class, or a native builtin).
type Value interface {
	Type() string
	String() string
}

// Nil is Lox's "nil", the only value of its own type.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// Bool wraps a Go bool.
type Bool bool

func (Bool) Type() string      { return "bool" }
func (b Bool) String() string  { return strconv.FormatBool(bool(b)) }

// Number is Lox's single numeric type: a float64, formatted without a
// trailing ".0" for integral values (spec.md §3).
type Number float64

func (Number) Type() string { return "number" }
func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is Lox's string type.
type String string

func (String) Type() string     { return "string" }
func (s String) String() string { return string(s) }

// Callable is anything invocable with "(" args ")": a declared
// function, a bound method, a class (as its constructor), or a native
// builtin like clock().
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, args []Value) (Value, error)
}

// Builtin wraps a native Go function as a Callable, for clock() and
// any future host function (spec.md §4.8).
type Builtin struct {
	Name string
	Arr  int
	Fn   func(i *Interpreter, args []Value) (Value, error)
}

func (b *Builtin) Type() string      { return "function" }
func (b *Builtin) Arity() int        { return b.Arr }
func (b *Builtin) String() string    { return fmt.Sprintf("<native fn %s>", b.Name) }
func (b *Builtin) Call(i *Interpreter, args []Value) (Value, error) {
	return b.Fn(i, args)
}

// IsTruthy implements Lox's truthiness rule: nil and false are falsy,
// everything else is truthy (spec.md §4.4).
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(val)
	default:
		return true
	}
}

// IsEqual implements Lox's "==" rule: nil equals only nil, numbers and
// strings compare by value, everything else compares by identity
// (which for the struct-by-value Bool/Number/String types here is the
// same as value equality; instances compare by the Go pointer they
// wrap) (spec.md §4.4).
func IsEqual(a, b Value) bool {
	_, aNil := a.(Nil)
	_, bNil := b.(Nil)
	if aNil || bNil {
		return aNil && bNil
	}

	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders v for `print` statements and REPL echoes. It
// differs from v.String() only in that a nil Value (no value at all)
// also renders as "nil" instead of panicking; it is kept separate so
// the evaluator has one place to change display formatting without
// touching Value.String() error messages.
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
