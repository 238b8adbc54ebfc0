// Package interp is the tree-walking evaluator: it executes a parsed
// and resolved Program, maintaining the chain of scope frames spec.md
// §3/§4.4 describes and producing writes to a host output sink.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/mnmnc/lox/internal/ast"
	lerr "github.com/mnmnc/lox/internal/errors"
	"github.com/mnmnc/lox/internal/token"
)

// Interpreter walks a Program, threading a "current frame" pointer
// through blocks and calls and consulting the resolver's hop-count map
// for every variable reference.
type Interpreter struct {
	Globals     *Environment
	environment *Environment
	locals      map[ast.Expr]int
	out         io.Writer
	fileName    string
	callStack   lerr.StackTrace
}

// New creates an Interpreter. locals is the hop-count table the
// resolver produced for the same Program about to be interpreted; out
// is where `print` writes. fileName is used only to label stack
// frames (the REPL passes "<repl>").
func New(locals map[ast.Expr]int, out io.Writer, fileName string) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{Globals: globals, environment: globals, locals: locals, out: out, fileName: fileName}
	i.defineNatives()
	return i
}

// AddLocals merges another resolver pass's hop-count table into this
// interpreter's. The REPL resolves each line as its own Program, so
// this is how a long-lived Interpreter picks up each line's table
// without losing hops recorded for earlier lines — node pointers never
// collide across lines since each line parses its own AST.
func (i *Interpreter) AddLocals(locals map[ast.Expr]int) {
	if i.locals == nil {
		i.locals = make(map[ast.Expr]int, len(locals))
	}
	for expr, hops := range locals {
		i.locals[expr] = hops
	}
}

func (i *Interpreter) defineNatives() {
	i.Globals.Define("clock", &Builtin{
		Name: "clock",
		Arr:  0,
		Fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}

// Interpret executes every top-level statement in order, stopping at
// the first runtime error (spec.md §5, "Ordering").
func (i *Interpreter) Interpret(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) pushFrame(name string, pos token.Position) {
	i.callStack = append(i.callStack, lerr.NewStackFrame(name, i.fileName, &pos))
}

func (i *Interpreter) popFrame() {
	i.callStack = i.callStack[:len(i.callStack)-1]
}

func (i *Interpreter) runtimeError(line int, message string) error {
	trace := make(lerr.StackTrace, len(i.callStack))
	copy(trace, i.callStack)
	return &RuntimeError{Line: line, Message: message, Stack: trace}
}

// --- statements ----------------------------------------------------------

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.eval(s.Expression)
		return err

	case *ast.PrintStmt:
		v, err := i.eval(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, Stringify(v))
		return nil

	case *ast.VarStmt:
		var value Value = Nil{}
		if s.Initializer != nil {
			v, err := i.eval(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewChildEnvironment(i.environment))

	case *ast.IfStmt:
		cond, err := i.eval(s.Condition)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return i.execute(s.Then)
		} else if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.eval(s.Condition)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := NewFunction(s, i.environment, false)
		i.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value Value = Nil{}
		if s.Value != nil {
			v, err := i.eval(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		panic(returnSignal{Value: value})

	case *ast.ClassStmt:
		return i.executeClass(s)

	default:
		return i.runtimeError(stmt.Pos().Line, fmt.Sprintf("internal error: unhandled statement %T", stmt))
	}
}

// executeBlock runs stmts with env as the current frame, always
// restoring the previous frame on exit — including when a runtime
// error or the return signal unwinds through it (spec.md §5).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := i.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return i.runtimeError(s.Superclass.Name.Pos.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.environment.Define(s.Name.Lexeme, Nil{})

	closureEnv := i.environment
	if superclass != nil {
		closureEnv = NewChildEnvironment(i.environment)
		closureEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, closureEnv, m.Name.Lexeme == "init")
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return i.environment.Assign(s.Name.Lexeme, class)
}

// --- expressions -----------------------------------------------------

func (i *Interpreter) eval(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return i.eval(e.Inner)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Ternary:
		cond, err := i.eval(e.Cond)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return i.eval(e.Then)
		}
		return i.eval(e.Else)

	case *ast.Variable:
		v, err := i.lookupVariable(e.Name.Lexeme, e)
		if err != nil {
			return nil, i.runtimeError(e.Name.Pos.Line, err.Error())
		}
		return v, nil

	case *ast.Assign:
		value, err := i.eval(e.Value)
		if err != nil {
			return nil, err
		}
		if hops, ok := i.locals[e]; ok {
			i.environment.AssignAt(hops, e.Name.Lexeme, value)
		} else if err := i.Globals.Assign(e.Name.Lexeme, value); err != nil {
			return nil, i.runtimeError(e.Name.Pos.Line, err.Error())
		}
		return value, nil

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get:
		obj, err := i.eval(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, i.runtimeError(e.Name.Pos.Line, "Only instances have properties.")
		}
		v, getErr := instance.Get(e.Name.Lexeme)
		if getErr != nil {
			return nil, i.runtimeError(e.Name.Pos.Line, getErr.Error())
		}
		return v, nil

	case *ast.Set:
		obj, err := i.eval(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, i.runtimeError(e.Name.Pos.Line, "Only instances have properties.")
		}
		value, err := i.eval(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name.Lexeme, value)
		return value, nil

	case *ast.This:
		v, err := i.lookupVariable("this", e)
		if err != nil {
			return nil, i.runtimeError(e.Keyword.Pos.Line, err.Error())
		}
		return v, nil

	case *ast.Super:
		return i.evalSuper(e)

	case *ast.Lambda:
		return NewLambda(e, i.environment), nil

	default:
		return nil, i.runtimeError(expr.Pos().Line, fmt.Sprintf("internal error: unhandled expression %T", expr))
	}
}

func literalValue(v any) Value {
	switch tv := v.(type) {
	case nil:
		return Nil{}
	case bool:
		return Bool(tv)
	case float64:
		return Number(tv)
	case string:
		return String(tv)
	default:
		return Nil{}
	}
}

func (i *Interpreter) lookupVariable(name string, expr ast.Expr) (Value, error) {
	if hops, ok := i.locals[expr]; ok {
		return i.environment.GetAt(hops, name)
	}
	return i.Globals.Get(name)
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, i.runtimeError(e.Operator.Pos.Line, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return Bool(!IsTruthy(right)), nil
	}
	return nil, i.runtimeError(e.Operator.Pos.Line, "Unknown unary operator.")
}

func (i *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.OR {
		if IsTruthy(left) {
			return left, nil
		}
		return i.eval(e.Right)
	}
	if !IsTruthy(left) {
		return left, nil
	}
	return i.eval(e.Right)
}

func (i *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.MINUS, token.SLASH, token.STAR,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, i.runtimeError(e.Operator.Pos.Line, "Operand must be a number.")
		}
		switch e.Operator.Type {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			if rn == 0 {
				return nil, i.runtimeError(e.Operator.Pos.Line, "Cannot divide by 0")
			}
			return ln / rn, nil
		case token.GREATER:
			return Bool(ln > rn), nil
		case token.GREATER_EQUAL:
			return Bool(ln >= rn), nil
		case token.LESS:
			return Bool(ln < rn), nil
		case token.LESS_EQUAL:
			return Bool(ln <= rn), nil
		}

	case token.PLUS:
		return i.evalPlus(e, left, right)

	case token.BANG_EQUAL:
		return Bool(!IsEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return Bool(IsEqual(left, right)), nil
	}
	return nil, i.runtimeError(e.Operator.Pos.Line, "Unknown binary operator.")
}

// evalPlus implements "+": number+number adds, string+string
// concatenates, and — an extension over classical Lox the teacher's
// value-coercion style suggested — if either side is a string the
// other is coerced to its display form (spec.md §4.4).
func (i *Interpreter) evalPlus(e *ast.Binary, left, right Value) (Value, error) {
	if ln, ok := left.(Number); ok {
		if rn, ok := right.(Number); ok {
			return ln + rn, nil
		}
	}
	if ls, ok := left.(String); ok {
		if rs, ok := right.(String); ok {
			return ls + rs, nil
		}
	}
	if _, ok := left.(String); ok {
		return left.(String) + String(Stringify(right)), nil
	}
	if _, ok := right.(String); ok {
		return String(Stringify(left)) + right.(String), nil
	}
	return nil, i.runtimeError(e.Operator.Pos.Line, "Operands must be two numbers or two strings.")
}

func (i *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, i.runtimeError(e.Paren.Pos.Line, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, i.runtimeError(e.Paren.Pos.Line,
			fmt.Sprintf("Expected %d arguments, but got %d.", callable.Arity(), len(args)))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	hops, ok := i.locals[e]
	if !ok {
		return nil, i.runtimeError(e.Keyword.Pos.Line, "Can't use 'super' outside of a class.")
	}
	superVal, err := i.environment.GetAt(hops, "super")
	if err != nil {
		return nil, i.runtimeError(e.Keyword.Pos.Line, err.Error())
	}
	superclass, ok := superVal.(*Class)
	if !ok {
		return nil, i.runtimeError(e.Keyword.Pos.Line, "Superclass must be a class.")
	}

	thisVal, err := i.environment.GetAt(hops-1, "this")
	if err != nil {
		return nil, i.runtimeError(e.Keyword.Pos.Line, err.Error())
	}
	instance, ok := thisVal.(*Instance)
	if !ok {
		return nil, i.runtimeError(e.Keyword.Pos.Line, "internal error: 'this' is not an instance.")
	}

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, i.runtimeError(e.Method.Pos.Line, fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.Bind(instance), nil
}
