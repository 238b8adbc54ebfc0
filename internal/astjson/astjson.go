// Package astjson converts a parsed Lox AST into a JSON-serializable
// tree for the `lox ast` debug subcommand, which can then be
// pretty-printed (tidwall/pretty), queried (tidwall/gjson), or redacted
// (tidwall/sjson) without ever going back through the parser.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/mnmnc/lox/internal/ast"
	"github.com/mnmnc/lox/internal/token"
)

// node is the generic JSON shape every AST node marshals to: a "kind"
// discriminator, a "pos" source location, and whatever fields are
// specific to that node kind.
type node map[string]any

func pos(p token.Position) node {
	return node{"line": p.Line, "column": p.Column}
}

// FromProgram converts an entire parsed program into its JSON tree.
func FromProgram(program *ast.Program) any {
	stmts := make([]any, len(program.Statements))
	for i, s := range program.Statements {
		stmts[i] = fromStmt(s)
	}
	return node{"kind": "Program", "statements": stmts}
}

// Marshal renders program as indented JSON text.
func Marshal(program *ast.Program) ([]byte, error) {
	return json.MarshalIndent(FromProgram(program), "", "  ")
}

func fromStmt(s ast.Stmt) any {
	if s == nil {
		return nil
	}
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		return node{"kind": "ExpressionStmt", "pos": pos(st.Pos()), "expression": fromExpr(st.Expression)}

	case *ast.PrintStmt:
		return node{"kind": "PrintStmt", "pos": pos(st.Pos()), "expression": fromExpr(st.Expression)}

	case *ast.VarStmt:
		n := node{"kind": "VarStmt", "pos": pos(st.Pos()), "name": st.Name.Lexeme}
		if st.Initializer != nil {
			n["initializer"] = fromExpr(st.Initializer)
		}
		return n

	case *ast.BlockStmt:
		stmts := make([]any, len(st.Statements))
		for i, inner := range st.Statements {
			stmts[i] = fromStmt(inner)
		}
		return node{"kind": "BlockStmt", "pos": pos(st.Pos()), "statements": stmts}

	case *ast.IfStmt:
		n := node{
			"kind":      "IfStmt",
			"pos":       pos(st.Pos()),
			"condition": fromExpr(st.Condition),
			"then":      fromStmt(st.Then),
		}
		if st.Else != nil {
			n["else"] = fromStmt(st.Else)
		}
		return n

	case *ast.WhileStmt:
		return node{
			"kind":      "WhileStmt",
			"pos":       pos(st.Pos()),
			"condition": fromExpr(st.Condition),
			"body":      fromStmt(st.Body),
		}

	case *ast.FunctionStmt:
		return node{
			"kind":   "FunctionStmt",
			"pos":    pos(st.Pos()),
			"name":   st.Name.Lexeme,
			"params": paramNames(st.Params),
			"body":   fromStmts(st.Body),
		}

	case *ast.ReturnStmt:
		n := node{"kind": "ReturnStmt", "pos": pos(st.Pos())}
		if st.Value != nil {
			n["value"] = fromExpr(st.Value)
		}
		return n

	case *ast.ClassStmt:
		methods := make([]any, len(st.Methods))
		for i, m := range st.Methods {
			methods[i] = fromStmt(m)
		}
		n := node{"kind": "ClassStmt", "pos": pos(st.Pos()), "name": st.Name.Lexeme, "methods": methods}
		if st.Superclass != nil {
			n["superclass"] = st.Superclass.Name.Lexeme
		}
		return n

	default:
		return node{"kind": fmt.Sprintf("Unknown(%T)", s)}
	}
}

func fromStmts(stmts []ast.Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = fromStmt(s)
	}
	return out
}

func fromExpr(e ast.Expr) any {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ast.Literal:
		return node{"kind": "Literal", "pos": pos(ex.Pos()), "value": ex.Value}

	case *ast.Grouping:
		return node{"kind": "Grouping", "pos": pos(ex.Pos()), "inner": fromExpr(ex.Inner)}

	case *ast.Unary:
		return node{"kind": "Unary", "pos": pos(ex.Pos()), "operator": ex.Operator.Lexeme, "right": fromExpr(ex.Right)}

	case *ast.Binary:
		return node{
			"kind": "Binary", "pos": pos(ex.Pos()),
			"operator": ex.Operator.Lexeme, "left": fromExpr(ex.Left), "right": fromExpr(ex.Right),
		}

	case *ast.Logical:
		return node{
			"kind": "Logical", "pos": pos(ex.Pos()),
			"operator": ex.Operator.Lexeme, "left": fromExpr(ex.Left), "right": fromExpr(ex.Right),
		}

	case *ast.Ternary:
		return node{
			"kind": "Ternary", "pos": pos(ex.Pos()),
			"cond": fromExpr(ex.Cond), "then": fromExpr(ex.Then), "else": fromExpr(ex.Else),
		}

	case *ast.Variable:
		return node{"kind": "Variable", "pos": pos(ex.Pos()), "name": ex.Name.Lexeme}

	case *ast.Assign:
		return node{"kind": "Assign", "pos": pos(ex.Pos()), "name": ex.Name.Lexeme, "value": fromExpr(ex.Value)}

	case *ast.Call:
		args := make([]any, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = fromExpr(a)
		}
		return node{"kind": "Call", "pos": pos(ex.Pos()), "callee": fromExpr(ex.Callee), "args": args}

	case *ast.Get:
		return node{"kind": "Get", "pos": pos(ex.Pos()), "object": fromExpr(ex.Object), "name": ex.Name.Lexeme}

	case *ast.Set:
		return node{
			"kind": "Set", "pos": pos(ex.Pos()),
			"object": fromExpr(ex.Object), "name": ex.Name.Lexeme, "value": fromExpr(ex.Value),
		}

	case *ast.This:
		return node{"kind": "This", "pos": pos(ex.Pos())}

	case *ast.Super:
		return node{"kind": "Super", "pos": pos(ex.Pos()), "method": ex.Method.Lexeme}

	case *ast.Lambda:
		return node{"kind": "Lambda", "pos": pos(ex.Pos()), "params": paramNames(ex.Params), "body": fromStmts(ex.Body)}

	default:
		return node{"kind": fmt.Sprintf("Unknown(%T)", e)}
	}
}

func paramNames(params []token.Token) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return names
}
