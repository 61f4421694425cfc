package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/mlang"
	"github.com/shopspring/decimal"
)

// --- Syntax tree -----------------------------------------------------------

// Node is a node of the syntax tree. Every node knows the source lines it
// has been parsed from.
//
// The set of node types is closed: Statement and Expression implementations
// are the types of this file.
type Node interface {
	Span() mlang.Span
	node()
}

// Statement is a node which may appear in a program.
type Statement interface {
	Node
	stmt()
}

// Expression is a node which evaluates to a value.
type Expression interface {
	Node
	expr()
}

// Variable is an expression which may appear on the left hand side of an
// assignment: an *Identifier or a *Selector.
type Variable interface {
	Expression
	variable()
}

type base struct {
	span mlang.Span
}

// Span returns the source lines of a node.
func (b base) Span() mlang.Span {
	return b.span
}

func (base) node() {}

// --- Statements ------------------------------------------------------------

// Program is an ordered sequence of statements.
type Program struct {
	base
	Statements []Statement
}

// Assignment is `target = expr;`.
type Assignment struct {
	base
	Target Variable
	Expr   Expression
}

// OpAssignment is an assignment with operator, e.g. `target += expr;`.
type OpAssignment struct {
	base
	Operator string // one of += -= *= /=
	Target   Variable
	Expr     Expression
}

// BinaryOperator returns the plain operator an assignment combines with, e.g. "+" for "+=".
func (a *OpAssignment) BinaryOperator() string {
	return strings.TrimSuffix(a.Operator, "=")
}

// Instruction is one of print, break, continue and return.
type Instruction struct {
	base
	Name string
	Args []Expression
}

// While is `while (cond) body`.
type While struct {
	base
	Cond Expression
	Body Statement
}

// For is `for var = range body`.
type For struct {
	base
	Var   *Identifier
	Range *Range
	Body  Statement
}

// If is `if (cond) then else otherwise`. Else may be nil.
type If struct {
	base
	Cond Expression
	Then Statement
	Else Statement
}

// Block is `{ program }`.
type Block struct {
	base
	Body *Program
}

func (*Program) stmt()      {}
func (*Assignment) stmt()   {}
func (*OpAssignment) stmt() {}
func (*Instruction) stmt()  {}
func (*While) stmt()        {}
func (*For) stmt()          {}
func (*If) stmt()           {}
func (*Block) stmt()        {}

// --- Expressions -----------------------------------------------------------

// Constant is a literal. Value is one of int64, decimal.Decimal, string and bool,
// according to Kind.
type Constant struct {
	base
	Kind  mlang.Kind
	Value interface{}
}

// Vector is `[e1, e2, …]`.
type Vector struct {
	base
	Elements []Expression
}

// Range is `begin : end`.
type Range struct {
	base
	Begin Expression
	End   Expression
}

// Operator is an operator applied to one (unary minus, transpose) or two
// operands.
type Operator struct {
	base
	Op       string
	Operands []Expression
}

// Function is a call to a builtin function.
type Function struct {
	base
	Name string
	Args []Expression
}

// Identifier is a variable name.
type Identifier struct {
	base
	Name string
}

// Selector is `base[i1, i2, …]`, selecting leading dimensions of an array.
type Selector struct {
	base
	Base  *Identifier
	Index *Vector
}

func (*Constant) expr()   {}
func (*Vector) expr()     {}
func (*Range) expr()      {}
func (*Operator) expr()   {}
func (*Function) expr()   {}
func (*Identifier) expr() {}
func (*Selector) expr()   {}

func (*Identifier) variable() {}
func (*Selector) variable()   {}

// Transpose is the postfix transpose operator.
const Transpose = "'"

// IsUnary is a predicate: is this a unary operator application?
func (op *Operator) IsUnary() bool {
	return len(op.Operands) == 1
}

// --- Constructors ----------------------------------------------------------

// The constructors are used by the parser and by clients building trees
// by hand.

// NewProgram creates a program node.
func NewProgram(span mlang.Span, stmts ...Statement) *Program {
	return &Program{base: base{span}, Statements: stmts}
}

// NewAssignment creates an assignment node.
func NewAssignment(span mlang.Span, target Variable, e Expression) *Assignment {
	return &Assignment{base: base{span}, Target: target, Expr: e}
}

// NewOpAssignment creates an assignment with operator.
func NewOpAssignment(span mlang.Span, op string, target Variable, e Expression) *OpAssignment {
	return &OpAssignment{base: base{span}, Operator: op, Target: target, Expr: e}
}

// NewInstruction creates an instruction node.
func NewInstruction(span mlang.Span, name string, args ...Expression) *Instruction {
	return &Instruction{base: base{span}, Name: name, Args: args}
}

// NewWhile creates a while loop.
func NewWhile(span mlang.Span, cond Expression, body Statement) *While {
	return &While{base: base{span}, Cond: cond, Body: body}
}

// NewFor creates a for loop.
func NewFor(span mlang.Span, v *Identifier, r *Range, body Statement) *For {
	return &For{base: base{span}, Var: v, Range: r, Body: body}
}

// NewIf creates a conditional. otherwise may be nil.
func NewIf(span mlang.Span, cond Expression, then, otherwise Statement) *If {
	return &If{base: base{span}, Cond: cond, Then: then, Else: otherwise}
}

// NewBlock creates a block.
func NewBlock(span mlang.Span, body *Program) *Block {
	return &Block{base: base{span}, Body: body}
}

// NewConstant creates a literal node. The kind is derived from the Go type
// of value: int, int64, float64, decimal.Decimal, string or bool.
func NewConstant(span mlang.Span, value interface{}) *Constant {
	c := &Constant{base: base{span}, Value: value}
	switch v := value.(type) {
	case int:
		c.Kind, c.Value = mlang.IntKind, int64(v)
	case int64:
		c.Kind = mlang.IntKind
	case float64:
		c.Kind, c.Value = mlang.FloatKind, decimal.NewFromFloat(v)
	case decimal.Decimal:
		c.Kind = mlang.FloatKind
	case string:
		c.Kind = mlang.StringKind
	case bool:
		c.Kind = mlang.BoolKind
	default:
		panic(fmt.Sprintf("cannot create constant from %T", value))
	}
	return c
}

// NewVector creates a vector literal.
func NewVector(span mlang.Span, elems ...Expression) *Vector {
	return &Vector{base: base{span}, Elements: elems}
}

// NewRange creates a range.
func NewRange(span mlang.Span, begin, end Expression) *Range {
	return &Range{base: base{span}, Begin: begin, End: end}
}

// NewOperator creates an operator application.
func NewOperator(span mlang.Span, op string, operands ...Expression) *Operator {
	return &Operator{base: base{span}, Op: op, Operands: operands}
}

// NewFunction creates a call to a builtin function.
func NewFunction(span mlang.Span, name string, args ...Expression) *Function {
	return &Function{base: base{span}, Name: name, Args: args}
}

// NewIdentifier creates an identifier.
func NewIdentifier(span mlang.Span, name string) *Identifier {
	return &Identifier{base: base{span}, Name: name}
}

// NewSelector creates a selector.
func NewSelector(span mlang.Span, id *Identifier, index *Vector) *Selector {
	return &Selector{base: base{span}, Base: id, Index: index}
}

// --- S-expressions ---------------------------------------------------------

// Sexpr renders a syntax tree as an S-expression, e.g.
//
//     a = -b' + 1;   ⇒   (program (= a (+ (- (' b)) 1)))
//
func Sexpr(n Node) string {
	var b strings.Builder
	writeSexpr(&b, n)
	return b.String()
}

func writeSexpr(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		writeList(b, "program", n.Statements)
	case *Block:
		writeList(b, "block", n.Body.Statements)
	case *Assignment:
		writeList(b, "=", []Node{n.Target, n.Expr})
	case *OpAssignment:
		writeList(b, n.Operator, []Node{n.Target, n.Expr})
	case *Instruction:
		writeList(b, n.Name, n.Args)
	case *While:
		writeList(b, "while", []Node{n.Cond, n.Body})
	case *For:
		writeList(b, "for", []Node{n.Var, n.Range, n.Body})
	case *If:
		if n.Else == nil {
			writeList(b, "if", []Node{n.Cond, n.Then})
		} else {
			writeList(b, "if", []Node{n.Cond, n.Then, n.Else})
		}
	case *Constant:
		switch v := n.Value.(type) {
		case string:
			b.WriteString(fmt.Sprintf("%q", v))
		case decimal.Decimal:
			f := v.String()
			if !strings.Contains(f, ".") {
				f += ".0" // 2.0, not 2
			}
			b.WriteString(f)
		default:
			b.WriteString(fmt.Sprintf("%v", v))
		}
	case *Vector:
		b.WriteByte('[')
		for i, e := range n.Elements {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSexpr(b, e)
		}
		b.WriteByte(']')
	case *Range:
		writeList(b, ":", []Node{n.Begin, n.End})
	case *Operator:
		writeList(b, n.Op, n.Operands)
	case *Function:
		writeList(b, n.Name, n.Args)
	case *Identifier:
		b.WriteString(n.Name)
	case *Selector:
		writeList(b, "sel", []Node{n.Base, n.Index})
	case nil:
		b.WriteString("()")
	default:
		b.WriteString(fmt.Sprintf("<%T>", n))
	}
}

func writeList(b *strings.Builder, head string, children interface{}) {
	b.WriteByte('(')
	b.WriteString(head)
	forEach(children, func(c Node) {
		b.WriteByte(' ')
		writeSexpr(b, c)
	})
	b.WriteByte(')')
}

func forEach(children interface{}, f func(Node)) {
	switch cs := children.(type) {
	case []Node:
		for _, c := range cs {
			f(c)
		}
	case []Statement:
		for _, c := range cs {
			f(c)
		}
	case []Expression:
		for _, c := range cs {
			f(c)
		}
	}
}
