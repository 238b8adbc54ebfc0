package lexer

import (
	"testing"

	"github.com/mnmnc/lox/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 5;
x = x + 10;
`

	tests := []struct {
		expectedLexeme string
		expectedType   token.Type
	}{
		{"var", token.VAR},
		{"x", token.IDENTIFIER},
		{"=", token.EQUAL},
		{"5", token.NUMBER},
		{";", token.SEMICOLON},
		{"x", token.IDENTIFIER},
		{"=", token.EQUAL},
		{"x", token.IDENTIFIER},
		{"+", token.PLUS},
		{"10", token.NUMBER},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (lexeme=%q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "and class else false for fun if nil or print return super this true var while"

	expected := []token.Type{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUN,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	input := "! != = == < <= > >="
	expected := []token.Type{
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL, token.EOF,
	}
	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Literal.Str != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", tok.Literal.Str)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(l.Errors()), l.Errors())
	}
}

func TestMultilineString(t *testing.T) {
	l := New("\"line1\nline2\"\nprint 1;")
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	next := l.NextToken()
	if next.Type != token.PRINT || next.Pos.Line != 3 {
		t.Fatalf("expected print on line 3, got %s @ line %d", next.Type, next.Pos.Line)
	}
}

func TestNumberLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"123", 123},
		{"3.14", 3.14},
		{"0.5", 0.5},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.NUMBER {
			t.Fatalf("input %q: expected NUMBER, got %s", tt.input, tok.Type)
		}
		if tok.Literal.Num != tt.want {
			t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, tok.Literal.Num)
		}
	}
}

func TestNumberTrailingDotIsNotConsumed(t *testing.T) {
	// "123." with no following digit: the '.' is a separate DOT token,
	// matching spec.md's "followed by '.' AND a digit" rule.
	l := New("123.")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Lexeme != "123" {
		t.Fatalf("expected NUMBER(123), got %s(%q)", tok.Type, tok.Lexeme)
	}
	dot := l.NextToken()
	if dot.Type != token.DOT {
		t.Fatalf("expected DOT, got %s", dot.Type)
	}
}

func TestLineComment(t *testing.T) {
	l := New("// a comment\nprint 1;")
	tok := l.NextToken()
	if tok.Type != token.PRINT || tok.Pos.Line != 2 {
		t.Fatalf("expected print on line 2, got %s @ line %d", tok.Type, tok.Pos.Line)
	}
}

func TestNestedBlockComment(t *testing.T) {
	l := New("/* a /* b */ c */ print 1;")
	tok := l.NextToken()
	if tok.Type != token.PRINT {
		t.Fatalf("expected the whole nested comment to be skipped, got %s %q", tok.Type, tok.Lexeme)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	l := New("/* never closes")
	tok := l.NextToken()
	if tok.Type != token.EOF {
		t.Fatalf("expected EOF after unterminated comment, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestLineTracking(t *testing.T) {
	l := New("var a = 1;\nvar b = 2;\nprint a;")
	var lastLine int
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		lastLine = tok.Pos.Line
	}
	if lastLine != 3 {
		t.Fatalf("expected last token on line 3, got %d", lastLine)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(l.Errors()))
	}
}

func TestScanTokensEndsWithEOF(t *testing.T) {
	toks := New("print 1;").ScanTokens()
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("expected trailing EOF token")
	}
}
