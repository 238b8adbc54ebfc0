package astjson

import (
	"encoding/json"
	"testing"

	"github.com/mnmnc/lox/internal/lexer"
	"github.com/mnmnc/lox/internal/parser"
	"github.com/tidwall/gjson"
)

func parse(t *testing.T, src string) []byte {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	data, err := Marshal(program)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	return data
}

func TestMarshalProducesValidJSON(t *testing.T) {
	data := parse(t, `var a = 1 + 2; print a;`)
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
}

func TestQueryFirstStatementKind(t *testing.T) {
	data := parse(t, `print "hi";`)
	kind := gjson.GetBytes(data, "statements.0.kind").String()
	if kind != "PrintStmt" {
		t.Fatalf("got kind %q", kind)
	}
}

func TestQueryBinaryOperator(t *testing.T) {
	data := parse(t, `print 1 + 2;`)
	op := gjson.GetBytes(data, "statements.0.expression.operator").String()
	if op != "+" {
		t.Fatalf("got operator %q", op)
	}
}

func TestClassMethodsSerialize(t *testing.T) {
	data := parse(t, `class A { greet() { print "hi"; } }`)
	name := gjson.GetBytes(data, "statements.0.methods.0.name").String()
	if name != "greet" {
		t.Fatalf("got method name %q", name)
	}
}
