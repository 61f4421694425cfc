package typecheck

import (
	"github.com/npillmayer/mlang"
	"github.com/npillmayer/mlang/corelang"
	"github.com/npillmayer/mlang/grammar"
	"github.com/npillmayer/mlang/sframe"
)

func (c *Checker) checkProgram(prog *grammar.Program) (mlang.Type, error) {
	defer c.env.Enter(sframe.ProgramScope)()
	for _, stmt := range prog.Statements {
		if _, err := c.Check(stmt); err != nil {
			return mlang.None, err
		}
	}
	return mlang.None, nil
}

// Assignment to an identifier (re-)binds it in the current scope.
// Assignment to a selector requires the value to fit the selected part.
func (c *Checker) checkAssignment(a *grammar.Assignment) (mlang.Type, error) {
	switch target := a.Target.(type) {
	case *grammar.Identifier:
		t, err := c.Check(a.Expr)
		if err != nil {
			return mlang.None, err
		}
		c.env.Bind(target.Name, t)
	case *grammar.Selector:
		varType, err := c.Check(target)
		if err != nil {
			return mlang.None, err
		}
		expType, err := c.Check(a.Expr)
		if err != nil {
			return mlang.None, err
		}
		if !assignable(varType, expType) {
			return mlang.None, c.fail(a.Span(), "Cannot assign value of type %s to index of type %s",
				expType, varType)
		}
	}
	return mlang.None, nil
}

// assignable is a predicate: may a value of type src be stored into a
// selected part of type dst? The empty vector fits any array.
func assignable(dst, src mlang.Type) bool {
	if src.IsEmptyVector() {
		return dst.Rank() >= 1
	}
	return dst.Equals(src)
}

func (c *Checker) checkOpAssignment(a *grammar.OpAssignment) (mlang.Type, error) {
	varType, err := c.Check(a.Target)
	if err != nil {
		return mlang.None, err
	}
	expType, err := c.Check(a.Expr)
	if err != nil {
		return mlang.None, err
	}
	result, ok := corelang.Lookup(a.BinaryOperator(), varType, expType)
	if !ok {
		return mlang.None, c.fail(a.Span(), "Operator %s is not applicable for types %s and %s",
			a.Operator, varType, expType)
	}
	switch target := a.Target.(type) {
	case *grammar.Identifier:
		c.env.Bind(target.Name, result)
	case *grammar.Selector: // shape of selected part is fixed
		if !varType.Equals(result) {
			return mlang.None, c.fail(a.Span(), "Cannot assign value of type %s to index of type %s",
				result, varType)
		}
	}
	return mlang.None, nil
}

func (c *Checker) checkInstruction(inst *grammar.Instruction) (mlang.Type, error) {
	if inst.Name == "break" || inst.Name == "continue" {
		if !c.env.HasLabel(sframe.LoopScope) {
			if err := c.fail(inst.Span(), "Instruction %s has to be inside a loop", inst.Name); err != nil {
				return mlang.None, err
			}
		}
	}
	for _, arg := range inst.Args {
		if _, err := c.Check(arg); err != nil {
			return mlang.None, err
		}
	}
	return mlang.None, nil
}

func (c *Checker) checkWhile(w *grammar.While) (mlang.Type, error) {
	if err := c.checkCondition(w.Span(), w.Cond, "while"); err != nil {
		return mlang.None, err
	}
	return mlang.None, c.inScope(sframe.LoopScope, w.Body)
}

// The loop variable is bound in the current scope, not in the loop's scope,
// and remains bound after the loop.
func (c *Checker) checkFor(f *grammar.For) (mlang.Type, error) {
	t, err := c.Check(f.Range)
	if err != nil {
		return mlang.None, err
	}
	c.env.Bind(f.Var.Name, t)
	return mlang.None, c.inScope(sframe.LoopScope, f.Body)
}

func (c *Checker) checkIf(i *grammar.If) (mlang.Type, error) {
	if err := c.checkCondition(i.Span(), i.Cond, "if"); err != nil {
		return mlang.None, err
	}
	if err := c.inScope(sframe.ThenScope, i.Then); err != nil {
		return mlang.None, err
	}
	if i.Else != nil {
		return mlang.None, c.inScope(sframe.ElseScope, i.Else)
	}
	return mlang.None, nil
}

func (c *Checker) checkCondition(span mlang.Span, cond grammar.Expression, stmt string) error {
	t, err := c.Check(cond)
	if err != nil {
		return err
	}
	if !t.Equals(mlang.Bool) {
		return c.fail(span, "Condition in %s statement has to evaluate to boolean", stmt)
	}
	return nil
}
