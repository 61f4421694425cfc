package typecheck

import (
	"strconv"
	"strings"

	"github.com/npillmayer/mlang"
	"github.com/npillmayer/mlang/corelang"
	"github.com/npillmayer/mlang/grammar"
)

// checkAll checks a list of expressions and returns their types.
func (c *Checker) checkAll(exprs []grammar.Expression) ([]mlang.Type, error) {
	types := make([]mlang.Type, len(exprs))
	for i, e := range exprs {
		t, err := c.Check(e)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

// A vector stacks its elements, which have to be of identical types.
func (c *Checker) checkVector(v *grammar.Vector) (mlang.Type, error) {
	if len(v.Elements) == 0 {
		return mlang.EmptyVector, nil
	}
	types, err := c.checkAll(v.Elements)
	if err != nil {
		return mlang.None, err
	}
	if n := countDistinct(types); n > 1 {
		err := c.fail(v.Span(), "All elements in vector have to have the same type, %d different types found", n)
		if err != nil {
			return mlang.None, err
		}
	}
	return types[0].Stack(len(types)), nil
}

func countDistinct(types []mlang.Type) int {
	var distinct []mlang.Type
outer:
	for _, t := range types {
		for _, d := range distinct {
			if d.Equals(t) {
				continue outer
			}
		}
		distinct = append(distinct, t)
	}
	return len(distinct)
}

// A range has integer bounds and yields integers.
func (c *Checker) checkRange(r *grammar.Range) (mlang.Type, error) {
	bounds := []struct {
		e    grammar.Expression
		name string
	}{{r.Begin, "First"}, {r.End, "Second"}}
	for _, b := range bounds {
		t, err := c.Check(b.e)
		if err != nil {
			return mlang.None, err
		}
		if !t.Equals(mlang.Int) {
			if err := c.fail(r.Span(), "%s element in range has to be a integer", b.name); err != nil {
				return mlang.None, err
			}
		}
	}
	return mlang.Int, nil
}

func (c *Checker) checkOperator(op *grammar.Operator) (mlang.Type, error) {
	types, err := c.checkAll(op.Operands)
	if err != nil {
		return mlang.None, err
	}
	switch {
	case corelang.IsDefined(op.Op):
		result, ok := corelang.Lookup(op.Op, types...)
		if !ok {
			return mlang.None, c.fail(op.Span(), "Operator %s not applicable for types %s",
				op.Op, typeTuple(types))
		}
		return result, nil
	case corelang.IsEquality(op.Op):
		return mlang.Bool, nil
	case op.Op == grammar.Transpose && op.IsUnary():
		if types[0].Rank() != 2 {
			return mlang.None, c.fail(op.Span(), "Transposition can be performed only on 2d matrices")
		}
		return types[0].Transposed(), nil
	case corelang.IsElementwise(op.Op) && !op.IsUnary() && len(types) == 2:
		return c.checkElementwise(op, types[0], types[1])
	}
	return mlang.None, c.fail(op.Span(), "Unexpected operator %s", op.Op)
}

// Elementwise operators apply a scalar operator to the element kinds of
// arrays of equal rank and unify the arrays' shapes.
func (c *Checker) checkElementwise(op *grammar.Operator, a, b mlang.Type) (mlang.Type, error) {
	elem, ok := corelang.Lookup(corelang.ScalarOp(op.Op), a.Elem(), b.Elem())
	if !ok {
		return mlang.None, c.fail(op.Span(), "Operator %s is not applicable for types %s and %s",
			op.Op, a, b)
	}
	if a.Rank() != b.Rank() {
		return mlang.None, c.fail(op.Span(),
			"Operator %s is not applicable for types with different number of dimensions (%d and %d)",
			op.Op, a.Rank(), b.Rank())
	}
	shape, conflicts := corelang.MergeShapes(a, b)
	for _, conflict := range conflicts {
		err := c.fail(op.Span(),
			"Operator %s is not applicable for types with different sizes of dimensions (dimension %d: %s and %s)",
			op.Op, conflict.Dim, conflict.Left, conflict.Right)
		if err != nil {
			return mlang.None, err
		}
	}
	return mlang.Array(elem.Kind, shape...), nil
}

func (c *Checker) checkFunction(f *grammar.Function) (mlang.Type, error) {
	types, err := c.checkAll(f.Args)
	if err != nil {
		return mlang.None, err
	}
	builtin, ok := corelang.LookupBuiltin(f.Name)
	if !ok {
		return mlang.None, c.fail(f.Span(), "Unknown function %s", f.Name)
	}
	if !builtin.AcceptsArity(len(types)) {
		err := c.fail(f.Span(), "Function %s expects exactly %s arguments, while %d were found",
			f.Name, numberWord(builtin.Arity), len(types))
		if err != nil {
			return mlang.None, err
		}
	}
	for i, t := range types {
		if !t.Equals(mlang.Int) {
			err := c.fail(f.Span(), "Function %s expects integers as arguments, while argument number %d is of type %s",
				f.Name, i+1, t)
			if err != nil {
				return mlang.None, err
			}
		}
	}
	return builtin.ResultType(len(types)), nil
}

func (c *Checker) checkIdentifier(id *grammar.Identifier) (mlang.Type, error) {
	t, ok := c.env.Lookup(id.Name)
	if !ok {
		return mlang.None, c.fail(id.Span(), "Variable %s is not defined", id.Name)
	}
	return t, nil
}

// A selector drops as many leading dimensions from the variable's type as
// it has indices.
func (c *Checker) checkSelector(sel *grammar.Selector) (mlang.Type, error) {
	varType, err := c.Check(sel.Base)
	if err != nil {
		return mlang.None, err
	}
	selType, err := c.Check(sel.Index)
	if err != nil {
		return mlang.None, err
	}
	if selType.Kind != mlang.IntKind || selType.Rank() != 1 {
		return mlang.None, c.fail(sel.Span(), "Selector has to be a list of integers")
	}
	n := selType.Shape[0]
	if !n.IsKnown() {
		return varType, nil
	}
	if int(n) > varType.Rank() {
		return mlang.None, c.fail(sel.Span(), "Selector has more arguments than variable has dimensions")
	}
	return varType.Drop(int(n)), nil
}

// --- Helpers ---------------------------------------------------------------

func typeTuple(types []mlang.Type) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = t.String()
	}
	return "(" + strings.Join(s, ", ") + ")"
}

var numberWords = []string{"zero", "one", "two", "three", "four"}

func numberWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return strconv.Itoa(n)
}
