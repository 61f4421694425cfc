package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/mlang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseStatements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		input, sexpr string
	}{
		{"", "(program)"},
		{"a = 1;", "(program (= a 1))"},
		{"a = 1.5; b = \"s\";", `(program (= a 1.5) (= b "s"))`},
		{"a[1, 2] = true;", "(program (= (sel a [1 2]) true))"},
		{"a += 2; a -= b; a *= c; a /= 2.0;", "(program (+= a 2) (-= a b) (*= a c) (/= a 2.0))"},
		{"print a, \"x\";", `(program (print a "x"))`},
		{"break; continue; return 0;", "(program (break) (continue) (return 0))"},
		{"while (a < 10) a += 1;", "(program (while (< a 10) (+= a 1)))"},
		{"for i = 1:n { x = i; }", "(program (for i (: 1 n) (block (= x i))))"},
		{"{ }", "(program (block))"},
		{"x = [];", "(program (= x []))"},
		{"x = zeros();", "(program (= x (zeros)))"},
		{"x = eye(2, 3);", "(program (= x (eye 2 3)))"},
		{"x = [[1, 2], [3, 4]];", "(program (= x [[1 2] [3 4]]))"},
	} {
		prog, err := ParseString(x.input)
		if err != nil {
			t.Errorf("test #%d: unexpected error: %v", i, err)
			continue
		}
		if s := Sexpr(prog); s != x.sexpr {
			t.Errorf("test #%d: expected %s, have %s", i, x.sexpr, s)
		}
	}
}

func TestPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		input, sexpr string
	}{
		{"x = a - b - c;", "(program (= x (- (- a b) c)))"},
		{"x = a * b + c;", "(program (= x (+ (* a b) c)))"},
		{"x = a + b * c;", "(program (= x (+ a (* b c))))"},
		{"x = a / b ./ c;", "(program (= x (./ (/ a b) c)))"},
		{"x = -a';", "(program (= x (- (' a))))"},
		{"x = - -a;", "(program (= x (- (- a))))"},
		{"x = a'';", "(program (= x (' (' a))))"},
		{"x = a .+ b == c * d;", "(program (= x (== (.+ a b) (* c d))))"},
		{"x = -a .* b;", "(program (= x (.* (- a) b)))"},
	} {
		prog, err := ParseString(x.input)
		if err != nil {
			t.Errorf("test #%d: unexpected error: %v", i, err)
			continue
		}
		if s := Sexpr(prog); s != x.sexpr {
			t.Errorf("test #%d: expected %s, have %s", i, x.sexpr, s)
		}
	}
}

func TestDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	prog, err := ParseString("if (a) if (b) x = 1; else x = 2;")
	if err != nil {
		t.Fatal(err)
	}
	expected := "(program (if a (if b (= x 1) (= x 2))))"
	if s := Sexpr(prog); s != expected {
		t.Errorf("expected else to bind to inner if: %s, have %s", expected, s)
	}
	prog, err = ParseString("if (a) { if (b) x = 1; } else x = 2;")
	if err != nil {
		t.Fatal(err)
	}
	expected = "(program (if a (block (if b (= x 1))) (= x 2)))"
	if s := Sexpr(prog); s != expected {
		t.Errorf("expected else to bind to outer if: %s, have %s", expected, s)
	}
}

func TestSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	input := "a = 1;\nwhile (a < 3)\n{\n  a += 1;\n}\n"
	prog, err := ParseString(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, have %d", len(prog.Statements))
	}
	if span := prog.Statements[1].Span(); span != mlang.Lines(2, 5) {
		t.Errorf("expected while to span lines 2-5, is %v", span)
	}
	w := prog.Statements[1].(*While)
	if span := w.Cond.Span(); span != mlang.Lines(2, 2) {
		t.Errorf("expected condition at line 2, is %v", span)
	}
	if span := prog.Span(); span != mlang.Lines(1, 5) {
		t.Errorf("expected program to span lines 1-5, is %v", span)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		input   string
		line    int
		message string
	}{
		{"a = 1;\nb = ;", 2, "Unexpected token (SEMICOLON, ';')"},
		{"x = a < b < c;", 1, "Unexpected token (LESS, '<')"},
		{"x = 1\ny = 2;", 2, "Unexpected token (ID, 'y')"},
		{"1 = x;", 1, "Unexpected token (INT, '1')"},
		{"if a x = 1;", 1, "Unexpected token (ID, 'a')"},
		{"for i = 1 x = 1;", 1, "Unexpected token (ID, 'x')"},
		{"x = [1, 2;", 1, "Unexpected token (SEMICOLON, ';')"},
	} {
		_, err := ParseString(x.input)
		var cerr *mlang.CompilerError
		if !errors.As(err, &cerr) {
			t.Errorf("test #%d: expected compiler error, have %v", i, err)
			continue
		}
		if cerr.Component != mlang.ParserComponent {
			t.Errorf("test #%d: expected parser error, have %s", i, cerr.Component)
		}
		if cerr.Line() != x.line {
			t.Errorf("test #%d: expected error at line %d, is %d", i, x.line, cerr.Line())
		}
		if cerr.Message != x.message {
			t.Errorf("test #%d: expected message %q, have %q", i, x.message, cerr.Message)
		}
	}
}

func TestUnexpectedEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	for _, input := range []string{"a = ", "while (a < 1)", "{ a = 1;", "if (a) x = 1; else"} {
		_, err := ParseString(input)
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("%q: expected unexpected end of input, have %v", input, err)
			continue
		}
		var cerr *mlang.CompilerError
		if errors.As(err, &cerr) && cerr.Line() != -1 {
			t.Errorf("%q: expected no line for end of input, is %d", input, cerr.Line())
		}
	}
}

func TestParseTokenSlice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	tokens := []Token{
		{Type: Ident, Lexeme: "a", Line: 1},
		{Type: Assign, Lexeme: "=", Line: 1},
		{Type: IntLit, Lexeme: "42", Line: 1},
		{Type: Plus, Lexeme: "+", Line: 1},
		{Type: FloatLit, Lexeme: "0.5", Line: 1},
		{Type: Semicolon, Lexeme: ";", Line: 1},
	}
	prog, err := Parse(NewTokenSlice(tokens))
	if err != nil {
		t.Fatal(err)
	}
	op := prog.Statements[0].(*Assignment).Expr.(*Operator)
	if c := op.Operands[0].(*Constant); c.Kind != mlang.IntKind || c.Value != int64(42) {
		t.Errorf("expected int constant 42, have %v", c.Value)
	}
	if c := op.Operands[1].(*Constant); c.Kind != mlang.FloatKind {
		t.Errorf("expected float constant, have %v", c.Kind)
	}
}

func TestScannerErrorAbortsParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	_, err := ParseString("a = 1;\nb = $;")
	var cerr *mlang.CompilerError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected compiler error, have %v", err)
	}
	if cerr.Component != mlang.ScannerComponent || cerr.Line() != 2 {
		t.Errorf("expected scanner error at line 2, have %v", cerr)
	}
}

func TestLiteralValuesFollowCategory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		lit   Token
		kind  mlang.Kind
		sexpr string
	}{
		{Token{Type: IntLit, Value: "3", Lexeme: "3"}, mlang.IntKind, "3"},
		{Token{Type: IntLit, Value: int32(3), Lexeme: "3"}, mlang.IntKind, "3"},
		{Token{Type: IntLit, Value: uint8(7), Lexeme: "7"}, mlang.IntKind, "7"},
		{Token{Type: FloatLit, Value: float32(0.5), Lexeme: "0.5"}, mlang.FloatKind, "0.5"},
		{Token{Type: FloatLit, Value: 2.0, Lexeme: "2.0"}, mlang.FloatKind, "2.0"},
		{Token{Type: FloatLit, Lexeme: "1e3"}, mlang.FloatKind, "1000.0"},
		{Token{Type: StringLit, Lexeme: `"s"`}, mlang.StringKind, `"s"`},
		{Token{Type: KwFalse, Value: false, Lexeme: "false"}, mlang.BoolKind, "false"},
	} {
		x.lit.Line = 1
		prog, err := Parse(NewTokenSlice(assignmentOf(x.lit)))
		if err != nil {
			t.Errorf("test #%d: unexpected error: %v", i, err)
			continue
		}
		c := prog.Statements[0].(*Assignment).Expr.(*Constant)
		if c.Kind != x.kind {
			t.Errorf("test #%d: expected constant of kind %s, is %s", i, x.kind, c.Kind)
		}
		if s := Sexpr(c); s != x.sexpr {
			t.Errorf("test #%d: expected %s, have %s", i, x.sexpr, s)
		}
	}
}

func TestMalformedLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	for i, lit := range []Token{
		{Type: IntLit, Value: "three", Lexeme: "three", Line: 4},
		{Type: IntLit, Value: 2.5, Lexeme: "2.5", Line: 4},
		{Type: FloatLit, Value: true, Lexeme: "true", Line: 4},
		{Type: StringLit, Value: int64(1), Lexeme: "1", Line: 4},
	} {
		_, err := Parse(NewTokenSlice(assignmentOf(lit)))
		var cerr *mlang.CompilerError
		if !errors.As(err, &cerr) {
			t.Errorf("test #%d: expected parser error, have %v", i, err)
			continue
		}
		if cerr.Component != mlang.ParserComponent || cerr.Line() != 4 {
			t.Errorf("test #%d: expected parser error at line 4, have %v", i, cerr)
		}
		if !strings.HasPrefix(cerr.Message, "Malformed literal") {
			t.Errorf("test #%d: unexpected message %q", i, cerr.Message)
		}
	}
}

func TestFloatRangeDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	prog, err := ParseString("for i = 1:2.0 x = i;")
	if err != nil {
		t.Fatal(err)
	}
	expected := "(program (for i (: 1 2.0) (= x i)))"
	if s := Sexpr(prog); s != expected {
		t.Errorf("expected %s, have %s", expected, s)
	}
}

// assignmentOf returns the tokens of `x = lit;`.
func assignmentOf(lit Token) []Token {
	return []Token{
		{Type: Ident, Value: "x", Lexeme: "x", Line: lit.Line},
		{Type: Assign, Lexeme: "=", Line: lit.Line},
		lit,
		{Type: Semicolon, Lexeme: ";", Line: lit.Line},
	}
}
