// Package parser implements a recursive-descent parser for Lox.
//
// The parser consumes the token stream front-to-back with a single
// token of lookahead (spec.md §4.2). Binary operators are left
// associative and built by looping on the operator at each precedence
// level; unary and assignment are right associative via direct
// recursion. Syntax errors are collected (not raised as Go panics to
// the caller) and the parser recovers with panic-mode synchronisation
// so a single run can report more than one error.
package parser

import (
	"github.com/mnmnc/lox/internal/ast"
	"github.com/mnmnc/lox/internal/lexer"
	"github.com/mnmnc/lox/internal/token"
)

const maxArguments = 255

// parseError is an internal control-flow signal used to unwind out of
// a partially parsed expression/statement back to synchronize(). It
// never escapes the package: every exported entry point recovers it.
type parseError struct{}

// Parser turns a token stream into a list of statements.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []string
}

// New creates a Parser over every token the lexer produces.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{tokens: l.ScanTokens()}
	p.errors = append(p.errors, l.Errors()...)
	return p
}

// Errors returns every scan and parse error accumulated so far,
// formatted per spec.md §6.
func (p *Parser) Errors() []string { return p.errors }

// ParseProgram parses the entire token stream into a Program. Failed
// top-level declarations are recorded in Errors() and omitted (nil is
// never appended) from Program.Statements, so callers should check
// Errors() before evaluating, per spec.md §7.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

// --- declarations ------------------------------------------------------

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")
	params := p.parameterList()
	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// parameterList parses a comma-separated parameter list up to the
// closing ')'; the '(' has already been consumed.
func (p *Parser) parameterList() []token.Token {
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArguments {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	return params
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

// --- statements ----------------------------------------------------------

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{LeftBrace: p.previous(), Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Keyword: keyword, Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Keyword: keyword, Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}
}

// forStatement desugars "for (init; cond; incr) body" into
// "{ init; while (cond) { body; incr; } }" per spec.md §4.2, so the
// resolver and evaluator never need a dedicated for-node.
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{LeftBrace: keyword, Statements: []ast.Stmt{
			body,
			&ast.ExpressionStmt{Expression: increment},
		}}
	}

	if condition == nil {
		condition = &ast.Literal{Token: keyword, Value: true}
	}
	body = &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{LeftBrace: keyword, Statements: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

// --- expressions ---------------------------------------------------------
//
// Precedence, low to high: assignment, ternary, or, and, equality,
// comparison, term, factor, unary, call. Each level is one method that
// calls the next-higher level and then loops (for left-associative
// operators) or recurses once (for the right-associative assignment
// and ternary-arm productions) exactly as spec.md §4.2 prescribes.

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *Parser) ternary() ast.Expr {
	expr := p.or()
	if p.match(token.QUESTION) {
		question := p.previous()
		then := p.expression()
		p.consume(token.COLON, "Expect ':' after then-branch of ternary expression.")
		elseExpr := p.expression()
		return &ast.Ternary{Question: question, Cond: expr, Then: then, Else: elseExpr}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		operator := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: operator, Right: right}
	}
	return p.call()
}

// call loops so that chained calls and property accesses — "f()()",
// "a.b.c()" — parse correctly, alternating "(args)" and ".name"
// suffixes (spec.md §4.2).
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArguments {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Token: p.previous(), Value: nil}
	case p.match(token.NUMBER):
		tok := p.previous()
		return &ast.Literal{Token: tok, Value: tok.Literal.Num}
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.Literal{Token: tok, Value: tok.Literal.Str}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.FUN):
		return p.lambda()
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		paren := p.previous()
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Paren: paren, Inner: expr}
	}

	p.errorAt(p.peek(), "Expect expression.")
	panic(parseError{})
}

func (p *Parser) lambda() ast.Expr {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'fun'.")
	params := p.parameterList()
	p.consume(token.LEFT_BRACE, "Expect '{' before lambda body.")
	body := p.block()
	return &ast.Lambda{Keyword: keyword, Params: params, Body: body}
}

// --- token cursor helpers ------------------------------------------------

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

// errorAt reports a syntax error at tok without unwinding; callers that
// want to abandon the current production panic(parseError{}) themselves.
func (p *Parser) errorAt(tok token.Token, message string) {
	var where string
	if tok.Type == token.EOF {
		where = " at end"
	} else {
		where = " at '" + tok.Lexeme + "'"
	}
	p.errors = append(p.errors, lexer.Report(tok.Pos.Line, where, message))
}

// synchronize discards tokens after a parse error until it reaches a
// likely statement boundary: just past a ';', or just before a keyword
// that starts a new declaration or statement (spec.md §4.2 panic-mode
// recovery).
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}
