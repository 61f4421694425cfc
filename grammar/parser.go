package grammar

import (
	"errors"
	"strconv"
	"strings"

	"github.com/npillmayer/mlang"
	"github.com/shopspring/decimal"
)

// ErrUnexpectedEOF is wrapped by the diagnostic for premature end of input.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// Parse reads a program from a token source. Parsing stops at the first
// token which does not fit the grammar; the error returned is then a
// *mlang.CompilerError of component "Parser", citing the offending token and
// its line. Errors of the token source are returned unchanged.
//
// There is no error recovery and no partial tree is returned on errors.
func Parse(src TokenSource) (prog *Program, err error) {
	p := &parser{src: src}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
			tracer().Infof("parse aborted: %v", err)
		}
	}()
	p.next()
	prog = p.program()
	p.expect(EOF)
	return prog, nil
}

// ParseString parses a program from source text.
func ParseString(input string) (*Program, error) {
	scan, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(scan)
}

// ---------------------------------------------------------------------------

type parser struct {
	src  TokenSource
	tok  Token // lookahead
	last Token // most recently consumed token
}

// bailout is used to unwind the parser's call stack on the first error.
type bailout struct {
	err error
}

func (p *parser) next() {
	t, err := p.src.NextToken()
	if err != nil {
		panic(bailout{err: err})
	}
	p.tok = t
}

// consume moves past the lookahead token and returns it.
func (p *parser) consume() Token {
	t := p.tok
	tracer().Debugf("match %s", t)
	p.last = t
	p.next()
	return t
}

func (p *parser) expect(tt TokType) Token {
	if p.tok.Type != tt {
		p.unexpected()
	}
	if tt == EOF {
		return p.tok
	}
	return p.consume()
}

func (p *parser) accept(tt TokType) bool {
	if p.tok.Type == tt {
		p.consume()
		return true
	}
	return false
}

func (p *parser) unexpected() {
	var err *mlang.CompilerError
	if p.tok.Type == EOF {
		err = mlang.NewError(mlang.ParserComponent, mlang.NoSpan, "Unexpected end of input")
		err.Wrap(ErrUnexpectedEOF)
	} else {
		err = mlang.NewError(mlang.ParserComponent, mlang.Lines(p.tok.Line, p.tok.Line),
			"Unexpected token %s", p.tok)
	}
	panic(bailout{err: err})
}

// span covers the source lines from line `from` up to the last consumed token.
func (p *parser) span(from int) mlang.Span {
	return mlang.Lines(from, p.last.Line)
}

// --- Statements ------------------------------------------------------------

// startsStatement is a predicate: may the lookahead start a statement?
func (p *parser) startsStatement() bool {
	switch p.tok.Type {
	case Ident, LBrace, KwPrint, KwBreak, KwContinue, KwReturn, KwWhile, KwFor, KwIf:
		return true
	}
	return false
}

// program := (statement program) | ε
func (p *parser) program() *Program {
	from := p.tok.Line
	var stmts []Statement
	for p.startsStatement() {
		stmts = append(stmts, p.statement())
	}
	if len(stmts) == 0 {
		return NewProgram(mlang.Lines(from, from))
	}
	span := stmts[0].Span().Extend(stmts[len(stmts)-1].Span())
	return NewProgram(span, stmts...)
}

func (p *parser) statement() Statement {
	from := p.tok.Line
	switch p.tok.Type {
	case Ident:
		target := p.variable()
		switch p.tok.Type {
		case Assign:
			p.consume()
			e := p.expression()
			p.expect(Semicolon)
			return NewAssignment(p.span(from), target, e)
		case AddAssign, SubAssign, MulAssign, DivAssign:
			op := p.consume()
			e := p.expression()
			p.expect(Semicolon)
			return NewOpAssignment(p.span(from), op.Lexeme, target, e)
		}
		p.unexpected()
	case LBrace:
		p.consume()
		body := p.program()
		p.expect(RBrace)
		return NewBlock(p.span(from), body)
	case KwPrint:
		p.consume()
		args := []Expression{p.expression()}
		for p.accept(Comma) {
			args = append(args, p.expression())
		}
		p.expect(Semicolon)
		return NewInstruction(p.span(from), "print", args...)
	case KwBreak, KwContinue:
		kw := p.consume()
		p.expect(Semicolon)
		return NewInstruction(p.span(from), kw.Lexeme)
	case KwReturn:
		p.consume()
		e := p.expression()
		p.expect(Semicolon)
		return NewInstruction(p.span(from), "return", e)
	case KwWhile:
		p.consume()
		cond := p.condition()
		body := p.statement()
		return NewWhile(p.span(from), cond, body)
	case KwFor:
		p.consume()
		id := p.expect(Ident)
		v := NewIdentifier(mlang.Lines(id.Line, id.Line), id.Lexeme)
		p.expect(Assign)
		r := p.rangeExpr()
		body := p.statement()
		return NewFor(p.span(from), v, r, body)
	case KwIf:
		p.consume()
		cond := p.condition()
		then := p.statement()
		var otherwise Statement
		if p.accept(KwElse) { // else binds to the nearest open if
			otherwise = p.statement()
		}
		return NewIf(p.span(from), cond, then, otherwise)
	}
	p.unexpected()
	return nil
}

// condition := '(' expr ')'
func (p *parser) condition() Expression {
	p.expect(LParen)
	e := p.expression()
	p.expect(RParen)
	return e
}

// range := expr ':' expr
func (p *parser) rangeExpr() *Range {
	from := p.tok.Line
	begin := p.expression()
	p.expect(Colon)
	end := p.expression()
	return NewRange(p.span(from), begin, end)
}

// variable := ID | ID vector
func (p *parser) variable() Variable {
	t := p.expect(Ident)
	id := NewIdentifier(mlang.Lines(t.Line, t.Line), t.Lexeme)
	if p.tok.Type != LBracket {
		return id
	}
	index := p.vector()
	return NewSelector(p.span(t.Line), id, index)
}

// vector := '[' (expr (',' expr)*)? ']'
func (p *parser) vector() *Vector {
	from := p.expect(LBracket).Line
	elems := p.expressionList(RBracket)
	p.expect(RBracket)
	return NewVector(p.span(from), elems...)
}

// expressionList parses a possibly empty, comma separated list of expressions,
// terminated by (but not including) a closing token.
func (p *parser) expressionList(closing TokType) []Expression {
	if p.tok.Type == closing {
		return nil
	}
	list := []Expression{p.expression()}
	for p.accept(Comma) {
		list = append(list, p.expression())
	}
	return list
}

// --- Expressions -----------------------------------------------------------

// Binary operators by precedence level.
var (
	relationalOps     = map[TokType]bool{Equal: true, NotEqual: true, Less: true, Greater: true, LessEqual: true, GreaterEqual: true}
	additiveOps       = map[TokType]bool{Plus: true, Minus: true, DotPlus: true, DotMinus: true}
	multiplicativeOps = map[TokType]bool{Times: true, Divide: true, DotTimes: true, DotDivide: true}
)

// expression is the entry to the precedence levels. Relational operators
// are non-associative: `a < b < c` is rejected at the second operator.
func (p *parser) expression() Expression {
	from := p.tok.Line
	lhs := p.additive()
	if relationalOps[p.tok.Type] {
		op := p.consume()
		rhs := p.additive()
		return NewOperator(p.span(from), op.Lexeme, lhs, rhs)
	}
	return lhs
}

// additive := multiplicative (addop multiplicative)*   (left-associative)
func (p *parser) additive() Expression {
	from := p.tok.Line
	lhs := p.multiplicative()
	for additiveOps[p.tok.Type] {
		op := p.consume()
		rhs := p.multiplicative()
		lhs = NewOperator(p.span(from), op.Lexeme, lhs, rhs)
	}
	return lhs
}

// multiplicative := unary (mulop unary)*   (left-associative)
func (p *parser) multiplicative() Expression {
	from := p.tok.Line
	lhs := p.unary()
	for multiplicativeOps[p.tok.Type] {
		op := p.consume()
		rhs := p.unary()
		lhs = NewOperator(p.span(from), op.Lexeme, lhs, rhs)
	}
	return lhs
}

// unary := '-' unary | postfix   (right-associative)
func (p *parser) unary() Expression {
	if p.tok.Type == Minus {
		from := p.consume().Line
		operand := p.unary()
		return NewOperator(p.span(from), "-", operand)
	}
	return p.postfix()
}

// postfix := primary ('\'')*   (binds tightest)
func (p *parser) postfix() Expression {
	from := p.tok.Line
	e := p.primary()
	for p.accept(Apostrophe) {
		e = NewOperator(p.span(from), Transpose, e)
	}
	return e
}

// primary := literal | func '(' args ')' | vector | variable
func (p *parser) primary() Expression {
	from := p.tok.Line
	switch p.tok.Type {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		t := p.consume()
		return NewConstant(p.span(from), literalValue(t))
	case KwEye, KwZeros, KwOnes:
		name := p.consume().Lexeme
		p.expect(LParen)
		args := p.expressionList(RParen)
		p.expect(RParen)
		return NewFunction(p.span(from), name, args...)
	case LBracket:
		return p.vector()
	case Ident:
		return p.variable()
	}
	p.unexpected()
	return nil
}

// literalValue returns the value of a literal token, as expected by
// NewConstant for the token's category. Tokens from sources other than
// Scanner may come without a value, which we derive from the lexeme, or with
// a value of a different Go type, which we convert. A value which does not fit
// the category is reported as a malformed literal.
func literalValue(t Token) interface{} {
	var value interface{}
	var ok bool
	switch t.Type {
	case KwTrue, KwFalse:
		value, ok = t.Type == KwTrue, true
	case StringLit:
		value, ok = stringValue(t)
	case IntLit:
		value, ok = intValue(t)
	case FloatLit:
		value, ok = floatValue(t)
	}
	if !ok {
		err := mlang.NewError(mlang.ParserComponent, mlang.Lines(t.Line, t.Line), "Malformed literal %s", t)
		panic(bailout{err: err})
	}
	return value
}

func stringValue(t Token) (interface{}, bool) {
	switch v := t.Value.(type) {
	case nil:
		return strings.Trim(t.Lexeme, `"`), true
	case string:
		return v, true
	}
	return nil, false
}

func intValue(t Token) (interface{}, bool) {
	switch v := t.Value.(type) {
	case nil:
		return parseInt(t.Lexeme)
	case string:
		return parseInt(v)
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	}
	return nil, false
}

func parseInt(s string) (interface{}, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func floatValue(t Token) (interface{}, bool) {
	switch v := t.Value.(type) {
	case nil:
		return parseFloat(t.Lexeme)
	case string:
		return parseFloat(v)
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return parseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	return nil, false
}

func parseFloat(s string) (interface{}, bool) {
	d, err := decimal.NewFromString(s)
	return d, err == nil
}
