package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/mlang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/shopspring/decimal"
)

func TestLexerCategories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	input := `x1 += .5e2; # comment
if (a <= 3) print "hi", ones(2)'; else_ = true != false;`
	tokens, err := ScanAll(input)
	if err != nil {
		t.Fatal(err)
	}
	expected := []TokType{
		Ident, AddAssign, FloatLit, Semicolon,
		KwIf, LParen, Ident, LessEqual, IntLit, RParen, KwPrint, StringLit, Comma,
		KwOnes, LParen, IntLit, RParen, Apostrophe, Semicolon,
		Ident, Assign, KwTrue, NotEqual, KwFalse, Semicolon,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d: %v", len(expected), len(tokens), tokens)
	}
	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("token #%d: expected %s, have %s", i, expected[i], tok)
		}
	}
	if tokens[4].Line != 2 {
		t.Errorf("expected 'if' at line 2, is %d", tokens[4].Line)
	}
}

func TestLexerDotOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	tokens, err := ScanAll("a.+b .- c.*d./e")
	if err != nil {
		t.Fatal(err)
	}
	expected := []TokType{Ident, DotPlus, Ident, DotMinus, Ident, DotTimes, Ident, DotDivide, Ident}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %v", len(expected), tokens)
	}
	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("token #%d: expected %s, have %s", i, expected[i], tok)
		}
	}
}

func TestLexerValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	tokens, err := ScanAll(`42 3.25 1e3 "text" name false`)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := tokens[0].Value.(int64); !ok || v != 42 {
		t.Errorf("expected int64 42, have %#v", tokens[0].Value)
	}
	if v, ok := tokens[1].Value.(decimal.Decimal); !ok || !v.Equal(decimal.New(325, -2)) {
		t.Errorf("expected decimal 3.25, have %#v", tokens[1].Value)
	}
	if v, ok := tokens[2].Value.(decimal.Decimal); !ok || !v.Equal(decimal.New(1, 3)) {
		t.Errorf("expected decimal 1000, have %#v", tokens[2].Value)
	}
	if v := tokens[3].Value; v != "text" {
		t.Errorf("expected string without quotes, have %#v", v)
	}
	if v := tokens[4].Value; v != "name" {
		t.Errorf("expected identifier name, have %#v", v)
	}
	if v := tokens[5].Value; v != false {
		t.Errorf("expected false, have %#v", v)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	tokens, err := ScanAll("a = 1;\n\nb = @;")
	var cerr *mlang.CompilerError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected compiler error, have %v", err)
	}
	if cerr.Component != mlang.ScannerComponent {
		t.Errorf("expected scanner error, have %s", cerr.Component)
	}
	if cerr.Line() != 3 {
		t.Errorf("expected error at line 3, is %d", cerr.Line())
	}
	if cerr.Message != `Illegal character "@"` {
		t.Errorf("unexpected message %q", cerr.Message)
	}
	if len(tokens) != 6 {
		t.Errorf("expected tokens before the error to be delivered, have %v", tokens)
	}
}

func TestTokenSliceEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mlang.grammar")
	defer teardown()
	//
	src := NewTokenSlice([]Token{{Type: Ident, Lexeme: "a", Line: 7}})
	src.NextToken()
	for i := 0; i < 2; i++ {
		tok, err := src.NextToken()
		if err != nil || tok.Type != EOF || tok.Line != 7 {
			t.Errorf("expected repeated EOF at line 7, have %v, %v", tok, err)
		}
	}
	if s := TokType(999).String(); s != "<illegal token: 999>" {
		t.Errorf("unexpected name for illegal token: %s", s)
	}
}
