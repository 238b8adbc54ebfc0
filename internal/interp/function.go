package interp

import (
	"fmt"

	"github.com/mnmnc/lox/internal/ast"
	"github.com/mnmnc/lox/internal/token"
)

// Function is a Lox function, method, or lambda value: a declaration
// plus the environment frame active where it was defined (its
// closure). IsInitializer marks a class's "init" method, whose return
// value is always the bound "this" regardless of what the body
// actually returns (spec.md §4.4).
type Function struct {
	Decl          *ast.FunctionStmt // nil for lambdas
	Lambda        *ast.Lambda       // nil for named functions/methods
	Closure       *Environment
	IsInitializer bool
	name          string
}

// NewFunction wraps a named function or method declaration.
func NewFunction(decl *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{Decl: decl, Closure: closure, IsInitializer: isInitializer, name: decl.Name.Lexeme}
}

// NewLambda wraps an anonymous "fun(...) {...}" expression.
func NewLambda(lambda *ast.Lambda, closure *Environment) *Function {
	return &Function{Lambda: lambda, Closure: closure}
}

func (f *Function) params() []token.Token {
	if f.Decl != nil {
		return f.Decl.Params
	}
	return f.Lambda.Params
}

func (f *Function) body() []ast.Stmt {
	if f.Decl != nil {
		return f.Decl.Body
	}
	return f.Lambda.Body
}

func (f *Function) callSite() token.Position {
	if f.Decl != nil {
		return f.Decl.Name.Pos
	}
	return f.Lambda.Keyword.Pos
}

func (f *Function) displayName() string {
	if f.name != "" {
		return f.name
	}
	return "<lambda>"
}

func (f *Function) Type() string { return "function" }
func (f *Function) Arity() int   { return len(f.params()) }
func (f *Function) String() string {
	if f.name != "" {
		return fmt.Sprintf("<fn %s>", f.name)
	}
	return "<fn>"
}

// Bind returns a copy of f whose closure has one extra frame binding
// "this" to instance — how a method becomes a bound method the moment
// it's looked up off an instance (spec.md §3, "Bound method").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewChildEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Lambda: f.Lambda, Closure: env, IsInitializer: f.IsInitializer, name: f.name}
}

// Call binds args into a fresh frame nested in the closure and runs
// the body, catching the return-by-unwinding signal at this boundary
// (spec.md §4.4, "Return").
func (f *Function) Call(i *Interpreter, args []Value) (result Value, err error) {
	env := NewChildEnvironment(f.Closure)
	for idx, param := range f.params() {
		env.Define(param.Lexeme, args[idx])
	}

	i.pushFrame(f.displayName(), f.callSite())
	defer i.popFrame()

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.IsInitializer {
				result, _ = f.Closure.GetAt(0, "this")
				return
			}
			result = sig.Value
			err = nil
		}
	}()

	if execErr := i.executeBlock(f.body(), env); execErr != nil {
		return nil, execErr
	}
	if f.IsInitializer {
		thisVal, _ := f.Closure.GetAt(0, "this")
		return thisVal, nil
	}
	return Nil{}, nil
}
