// Package resolver performs a static scope-resolution pass between
// parsing and evaluation. For every variable reference it counts how
// many enclosing block scopes separate the reference from the scope
// that declares it, so the evaluator can jump straight to the right
// Environment frame instead of walking the global map on every lookup
// (spec.md §4.3).
package resolver

import (
	"github.com/mnmnc/lox/internal/ast"
	"github.com/mnmnc/lox/internal/lexer"
	"github.com/mnmnc/lox/internal/token"
)

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnInitializer
	fnMethod
	fnLambda
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a name to whether it has finished being defined. A name
// present but false means "declared but its initializer is still being
// resolved" — referencing it in that state is the classic
// "var a = a;" self-reference bug, caught as an error.
type scope map[string]bool

// Resolver walks a parsed Program and produces a hop-count table the
// evaluator consults at runtime.
type Resolver struct {
	scopes []scope

	currentFunction functionKind
	currentClass    classKind

	// locals maps every Variable/This/Super/Assign expression to the
	// number of scopes between its occurrence and the scope that
	// declares the name. Keyed by pointer identity (ast.Expr is always
	// a pointer type), never by a synthesized id, so that two
	// syntactically identical references at different source
	// locations resolve independently.
	locals map[ast.Expr]int

	errors []string
}

// New creates a Resolver ready to walk a single Program.
func New() *Resolver {
	return &Resolver{locals: make(map[ast.Expr]int)}
}

// Errors returns every resolution error found, formatted per spec.md §6.
func (r *Resolver) Errors() []string { return r.errors }

// Locals returns the hop-count table built by Resolve. The evaluator
// looks a variable up here before falling back to the global scope.
func (r *Resolver) Locals() map[ast.Expr]int { return r.locals }

// Resolve walks every top-level statement in program.
func (r *Resolver) Resolve(program *ast.Program) {
	r.resolveStmts(program.Statements)
}

// --- scope stack -------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name]; ok {
		r.errorf(line, "Already a variable with this name in this scope.")
	}
	s[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal walks the scope stack from innermost to outermost
// looking for name; on a hit it records the hop count (0 = the
// innermost scope) against expr's identity. No match leaves expr
// absent from the table, which the evaluator treats as "look in
// globals".
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// --- statements ----------------------------------------------------------

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name.Lexeme, s.Name.Pos.Line)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)

	case *ast.FunctionStmt:
		r.declare(s.Name.Lexeme, s.Name.Pos.Line)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s.Params, s.Body, fnFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.errorf(s.Keyword.Pos.Line, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.errorf(s.Keyword.Pos.Line, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	default:
		panic(unhandledNode{stmt})
	}
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(c.Name.Lexeme, c.Name.Pos.Line)
	r.define(c.Name.Lexeme)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.errorf(c.Superclass.Name.Pos.Line, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range c.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method.Params, method.Body, kind)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

// resolveFunction resolves a function/method/lambda body in its own
// scope, with params pre-declared and currentFunction tracking what
// "return" is legal to do (spec.md §4.5/§4.7).
func (r *Resolver) resolveFunction(params []token.Token, body []ast.Stmt, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range params {
		r.declare(param.Lexeme, param.Pos.Line)
		r.define(param.Lexeme)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosing
}

// --- expressions -----------------------------------------------------

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errorf(e.Name.Pos.Line, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.This:
		if r.currentClass == classNone {
			r.errorf(e.Keyword.Pos.Line, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")

	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.errorf(e.Keyword.Pos.Line, "Can't use 'super' outside of a class.")
		case classClass:
			r.errorf(e.Keyword.Pos.Line, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super")

	case *ast.Lambda:
		r.resolveFunction(e.Params, e.Body, fnLambda)

	case *ast.Literal:
		// nothing to resolve

	default:
		panic(unhandledNode{expr})
	}
}

func (r *Resolver) errorf(line int, message string) {
	r.errors = append(r.errors, lexer.Report(line, "", message))
}

// unhandledNode signals a resolver bug (an ast.Expr/Stmt variant added
// without a matching case here). It should never surface in practice.
type unhandledNode struct{ node any }

func (u unhandledNode) String() string { return "resolver: unhandled node" }
