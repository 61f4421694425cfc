package grammar

/*
BSD License

Copyright (c) 2019–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/npillmayer/mlang"
	"github.com/shopspring/decimal"
	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// TokType is the lexical category of a token.
type TokType int

// Token categories. EOF marks the end of input.
const (
	EOF TokType = iota
	IntLit
	FloatLit
	StringLit
	Ident

	KwTrue
	KwFalse
	KwIf
	KwElse
	KwFor
	KwWhile
	KwBreak
	KwContinue
	KwReturn
	KwPrint
	KwEye
	KwZeros
	KwOnes

	Assign
	AddAssign
	SubAssign
	MulAssign
	DivAssign

	Plus
	Minus
	Times
	Divide
	DotPlus
	DotMinus
	DotTimes
	DotDivide
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
	Apostrophe

	Colon
	Comma
	Semicolon
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	maxTokType // do not change sequence, used as a marker
)

// Category names, as they appear in parser diagnostics.
var tokNames = [...]string{
	EOF: "EOF", IntLit: "INT", FloatLit: "FLOAT", StringLit: "STRING", Ident: "ID",
	KwTrue: "TRUE", KwFalse: "FALSE", KwIf: "IF", KwElse: "ELSE", KwFor: "FOR", KwWhile: "WHILE",
	KwBreak: "BREAK", KwContinue: "CONTINUE", KwReturn: "RETURN", KwPrint: "PRINT",
	KwEye: "EYE", KwZeros: "ZEROS", KwOnes: "ONES",
	Assign: "ASSIGN", AddAssign: "ASSIGN_PLUS", SubAssign: "ASSIGN_MINUS",
	MulAssign: "ASSIGN_TIMES", DivAssign: "ASSIGN_DIVIDE",
	Plus: "PLUS", Minus: "MINUS", Times: "TIMES", Divide: "DIVIDE",
	DotPlus: "DOT_PLUS", DotMinus: "DOT_MINUS", DotTimes: "DOT_TIMES", DotDivide: "DOT_DIVIDE",
	Less: "LESS", Greater: "GREATER", LessEqual: "LESS_EQUAL", GreaterEqual: "GREATER_EQUAL",
	Equal: "EQUALS", NotEqual: "NOT_EQUALS", Apostrophe: "APOSTROPHE",
	Colon: "COLON", Comma: "COMMA", Semicolon: "SEMICOLON",
	LParen: "BRACKET_ROUND_L", RParen: "BRACKET_ROUND_R",
	LBracket: "BRACKET_SQUARE_L", RBracket: "BRACKET_SQUARE_R",
	LBrace: "BRACKET_CURLY_L", RBrace: "BRACKET_CURLY_R",
}

func (t TokType) String() string {
	if t >= 0 && t < maxTokType {
		return tokNames[t]
	}
	return fmt.Sprintf("<illegal token: %d>", int(t))
}

// The keyword tokens
var keywords = map[string]TokType{
	"true": KwTrue, "false": KwFalse,
	"if": KwIf, "else": KwElse, "for": KwFor, "while": KwWhile,
	"break": KwBreak, "continue": KwContinue, "return": KwReturn, "print": KwPrint,
	"eye": KwEye, "zeros": KwZeros, "ones": KwOnes,
}

// Operators and punctuation, by regular expression. Longer lexemes win
// over shorter ones, independent of the sequence.
var operators = []struct {
	pattern string
	tok     TokType
}{
	{`\+=`, AddAssign}, {`\-=`, SubAssign}, {`\*=`, MulAssign}, {`\/=`, DivAssign},
	{`==`, Equal}, {`!=`, NotEqual}, {`<=`, LessEqual}, {`>=`, GreaterEqual},
	{`\.\+`, DotPlus}, {`\.\-`, DotMinus}, {`\.\*`, DotTimes}, {`\.\/`, DotDivide},
	{`=`, Assign}, {`\+`, Plus}, {`\-`, Minus}, {`\*`, Times}, {`\/`, Divide},
	{`<`, Less}, {`>`, Greater}, {`'`, Apostrophe},
	{`:`, Colon}, {`,`, Comma}, {`;`, Semicolon},
	{`\(`, LParen}, {`\)`, RParen}, {`\[`, LBracket}, {`\]`, RBracket},
	{`[{]`, LBrace}, {`[}]`, RBrace},
}

// --- Tokens ----------------------------------------------------------------

// Token is a token as delivered by a TokenSource.
//
// Value holds the literal value for literal tokens: int64 for IntLit,
// decimal.Decimal for FloatLit, string for StringLit and Ident and bool for
// KwTrue and KwFalse. It is nil for all other categories.
type Token struct {
	Type   TokType
	Value  interface{}
	Lexeme string
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("(%s, '%s')", t.Type, t.Lexeme)
}

// TokenSource is an ordered, finite sequence of tokens. After the last token
// a source will return EOF tokens. An error aborts the sequence.
type TokenSource interface {
	NextToken() (Token, error)
}

// TokenSlice is a TokenSource reading from a slice of tokens.
type TokenSlice struct {
	tokens []Token
	pos    int
}

// NewTokenSlice creates a TokenSource from a slice of tokens. The slice does
// not need to be terminated by an EOF token.
func NewTokenSlice(tokens []Token) *TokenSlice {
	return &TokenSlice{tokens: tokens}
}

// NextToken returns the next token of the slice, or EOF.
func (ts *TokenSlice) NextToken() (Token, error) {
	if ts.pos >= len(ts.tokens) {
		line := -1
		if len(ts.tokens) > 0 {
			line = ts.tokens[len(ts.tokens)-1].Line
		}
		return Token{Type: EOF, Line: line}, nil
	}
	t := ts.tokens[ts.pos]
	ts.pos++
	return t, nil
}

// --- Lexer -----------------------------------------------------------------

var initOnce sync.Once // monitors one-time creation of the lexer

var mLexer *lex.Lexer
var mLexerErr error

// Lexer returns the lexmachine lexer for the language. The lexer is
// constructed and compiled once and may be shared between goroutines.
func Lexer() (*lex.Lexer, error) {
	initOnce.Do(func() {
		tracer().Infof("Creating lexer")
		lexer := lex.NewLexer()
		lexer.Add([]byte(`#[^\n]*`), skip)       // skip comments
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip) // skip whitespace
		// keywords have to be added before identifiers to win over them
		for kw, tok := range keywords {
			lexer.Add([]byte(kw), makeToken(tok))
		}
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(Ident))
		lexer.Add([]byte(`[0-9]+\.[0-9]+([eE][\+\-]?[0-9]+)?`), makeToken(FloatLit))
		lexer.Add([]byte(`\.[0-9]+([eE][\+\-]?[0-9]+)?`), makeToken(FloatLit))
		lexer.Add([]byte(`[0-9]+[eE][\+\-]?[0-9]+`), makeToken(FloatLit))
		lexer.Add([]byte(`[0-9]+`), makeToken(IntLit))
		lexer.Add([]byte(`\"[^"]*\"`), makeToken(StringLit))
		for _, op := range operators {
			lexer.Add([]byte(op.pattern), makeToken(op.tok))
		}
		if mLexerErr = lexer.Compile(); mLexerErr != nil {
			tracer().Errorf("Cannot compile lexer: %v", mLexerErr)
			return
		}
		mLexer = lexer
	})
	return mLexer, mLexerErr
}

func skip(*lex.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(tok TokType) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (interface{}, error) {
		lexeme := string(m.Bytes)
		var value interface{}
		switch tok {
		case IntLit:
			n, err := strconv.ParseInt(lexeme, 10, 64)
			if err != nil {
				return nil, mlang.NewError(mlang.ScannerComponent, mlang.Lines(m.StartLine, m.EndLine),
					"malformed integer %q", lexeme).Wrap(err)
			}
			value = n
		case FloatLit:
			d, err := decimal.NewFromString(lexeme)
			if err != nil {
				return nil, mlang.NewError(mlang.ScannerComponent, mlang.Lines(m.StartLine, m.EndLine),
					"malformed float %q", lexeme).Wrap(err)
			}
			value = d
		case StringLit:
			value = lexeme[1 : len(lexeme)-1] // trim off "…"
		case Ident:
			value = lexeme
		case KwTrue, KwFalse:
			value = tok == KwTrue
		}
		return s.Token(int(tok), value, m), nil
	}
}

// Scanner is a TokenSource reading tokens from source text.
type Scanner struct {
	scanner  *lex.Scanner
	lastLine int
	done     bool
}

// Tokenize creates a Scanner for a source text.
func Tokenize(input string) (*Scanner, error) {
	lexer, err := Lexer()
	if err != nil {
		return nil, err
	}
	scan, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: scan, lastLine: 1}, nil
}

// NextToken returns the next token from the input. Unrecognized input
// results in an error of component "Scanner".
func (sc *Scanner) NextToken() (Token, error) {
	if sc.done {
		return Token{Type: EOF, Line: sc.lastLine}, nil
	}
	tok, err, eos := sc.scanner.Next()
	if eos {
		sc.done = true
		return Token{Type: EOF, Line: sc.lastLine}, nil
	}
	if ui, is := err.(*machines.UnconsumedInput); is {
		sc.done = true
		var c string
		if ui.StartTC < len(ui.Text) {
			c = string(ui.Text[ui.StartTC : ui.StartTC+1])
		}
		return Token{}, mlang.NewError(mlang.ScannerComponent, mlang.Lines(ui.StartLine, ui.StartLine),
			"Illegal character %q", c)
	} else if err != nil {
		sc.done = true
		return Token{}, err
	}
	lmtok := tok.(*lex.Token)
	sc.lastLine = lmtok.EndLine
	t := Token{
		Type:   TokType(lmtok.Type),
		Value:  lmtok.Value,
		Lexeme: string(lmtok.Lexeme),
		Line:   lmtok.StartLine,
	}
	tracer().Debugf("token %s at line %d", t, t.Line)
	return t, nil
}

// ScanAll reads all tokens of a source text, excluding the final EOF token.
func ScanAll(input string) ([]Token, error) {
	scan, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		t, err := scan.NextToken()
		if err != nil {
			return tokens, err
		}
		if t.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, t)
	}
}
