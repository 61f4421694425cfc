package grammar

import (
	"sync"

	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/gorgo/lr/earley"
	"github.com/npillmayer/gorgo/lr/scanner"
)

// --- Initialization --------------------------------------------------------

var startOnce sync.Once // monitors one-time creation of the grammar

var mGrammar *lr.LRAnalysis
var mGrammarErr error

// MakeGrammar generates a context-free grammar for the language and returns
// its analysis, as needed for the Earley parser. The grammar is created once
// and shared afterwards.
//
// The grammar is stratified by operator precedence, the same way Parse
// descends through the precedence levels. It is used to double-check
// Parse's decisions (see Recognize), not to construct syntax trees.
//
func MakeGrammar() (*lr.LRAnalysis, error) {
	startOnce.Do(func() {
		tracer().Infof("Creating grammar")
		b := lr.NewGrammarBuilder("M")
		rule(b, "Program", "StmtList")
		rule(b, "StmtList")
		rule(b, "StmtList", "StmtList", "Stmt")
		// statements
		rule(b, "Stmt", "Var", Assign, "Expr", Semicolon)
		for _, op := range []TokType{AddAssign, SubAssign, MulAssign, DivAssign} {
			rule(b, "Stmt", "Var", op, "Expr", Semicolon)
		}
		rule(b, "Stmt", LBrace, "StmtList", RBrace)
		rule(b, "Stmt", KwPrint, "Args", Semicolon)
		rule(b, "Stmt", KwBreak, Semicolon)
		rule(b, "Stmt", KwContinue, Semicolon)
		rule(b, "Stmt", KwReturn, "Expr", Semicolon)
		rule(b, "Stmt", KwWhile, LParen, "Expr", RParen, "Stmt")
		rule(b, "Stmt", KwFor, Ident, Assign, "Expr", Colon, "Expr", "Stmt")
		rule(b, "Stmt", KwIf, LParen, "Expr", RParen, "Stmt")
		rule(b, "Stmt", KwIf, LParen, "Expr", RParen, "Stmt", KwElse, "Stmt")
		rule(b, "Var", Ident)
		rule(b, "Var", Ident, "Vector")
		// expressions
		rule(b, "Expr", "Additive")
		for _, op := range []TokType{Equal, NotEqual, Less, Greater, LessEqual, GreaterEqual} {
			rule(b, "Expr", "Additive", op, "Additive")
		}
		rule(b, "Additive", "Multiplicative")
		for _, op := range []TokType{Plus, Minus, DotPlus, DotMinus} {
			rule(b, "Additive", "Additive", op, "Multiplicative")
		}
		rule(b, "Multiplicative", "Unary")
		for _, op := range []TokType{Times, Divide, DotTimes, DotDivide} {
			rule(b, "Multiplicative", "Multiplicative", op, "Unary")
		}
		rule(b, "Unary", Minus, "Unary")
		rule(b, "Unary", "Postfix")
		rule(b, "Postfix", "Primary")
		rule(b, "Postfix", "Postfix", Apostrophe)
		for _, lit := range []TokType{IntLit, FloatLit, StringLit, KwTrue, KwFalse} {
			rule(b, "Primary", lit)
		}
		for _, fn := range []TokType{KwEye, KwZeros, KwOnes} {
			rule(b, "Primary", fn, LParen, "OptArgs", RParen)
		}
		rule(b, "Primary", "Vector")
		rule(b, "Primary", "Var")
		rule(b, "Vector", LBracket, "OptArgs", RBracket)
		rule(b, "OptArgs")
		rule(b, "OptArgs", "Args")
		rule(b, "Args", "Expr")
		rule(b, "Args", "Args", Comma, "Expr")
		g, err := b.Grammar()
		if err != nil {
			tracer().Errorf("Error creating grammar: %v", err)
			mGrammarErr = err
			return
		}
		mGrammar = lr.Analysis(g)
	})
	return mGrammar, mGrammarErr
}

// rule adds a production to a grammar builder. Right hand side symbols are
// either strings, denoting non-terminals, or token categories. A production
// without right hand side symbols is an epsilon-production.
func rule(b *lr.GrammarBuilder, lhs string, rhs ...interface{}) {
	r := b.LHS(lhs)
	if len(rhs) == 0 {
		r.Epsilon()
		return
	}
	for _, sym := range rhs {
		switch s := sym.(type) {
		case string:
			r = r.N(s)
		case TokType:
			r = r.T(s.String(), int(s))
		default:
			panic("illegal grammar symbol")
		}
	}
	r.End()
}

// Recognize runs an Earley parser over a token source and reports whether
// the tokens form a valid program. Errors of the token source are returned,
// syntax errors just result in false.
//
// Recognize accepts exactly the programs Parse accepts. It is considerably
// slower, but independent from the hand-written parser.
func Recognize(src TokenSource) (bool, error) {
	ga, err := MakeGrammar()
	if err != nil {
		return false, err
	}
	parser := earley.NewParser(ga, earley.GenerateTree(false))
	adapter := &tokenizer{src: src}
	accept, err := parser.Parse(adapter, nil)
	if adapter.err != nil {
		return false, adapter.err
	}
	if err != nil {
		tracer().Debugf("Earley parser rejects input: %v", err)
		return false, nil
	}
	tracer().Debugf("Earley parser accept=%v", accept)
	return accept, nil
}

// tokenizer adapts a TokenSource to the gorgo scanner interface.
type tokenizer struct {
	src     TokenSource
	pos     uint64
	err     error
	handler func(error)
}

var _ scanner.Tokenizer = &tokenizer{}

func (t *tokenizer) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	if t.err != nil {
		return scanner.EOF, nil, t.pos, 0
	}
	tok, err := t.src.NextToken()
	if err != nil {
		t.err = err
		if t.handler != nil {
			t.handler(err)
		}
		return scanner.EOF, nil, t.pos, 0
	}
	if tok.Type == EOF {
		return scanner.EOF, tok, t.pos, 0
	}
	start := t.pos
	t.pos += uint64(len(tok.Lexeme))
	return int(tok.Type), tok, start, uint64(len(tok.Lexeme))
}

func (t *tokenizer) SetErrorHandler(h func(error)) {
	t.handler = h
}
