package typecheck

import (
	"errors"
	"fmt"

	"github.com/npillmayer/mlang"
	"github.com/npillmayer/mlang/grammar"
	"github.com/npillmayer/mlang/sframe"
)

// Mode is the error policy of a checker.
type Mode int

// Checker modes
const (
	FailFast Mode = iota // stop at first error
	Collect              // collect errors and continue
)

func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case Collect:
		return "collect"
	}
	return fmt.Sprintf("<illegal mode: %d>", int(m))
}

// ErrNoProgram is reported when checking a nil program.
var ErrNoProgram = errors.New("no program to check")

// Checker type checks syntax trees. A checker uses a symbol environment,
// which may be shared between subsequent calls (e.g., in an interactive
// session), but not between concurrent ones.
type Checker struct {
	env    *sframe.ScopeFrameTree
	mode   Mode
	errors mlang.ErrorList
}

// NewChecker creates a type checker. If env is nil, a fresh environment is
// created.
func NewChecker(env *sframe.ScopeFrameTree, mode Mode) *Checker {
	if env == nil {
		env = sframe.NewScopeFrameTree()
	}
	return &Checker{env: env, mode: mode}
}

// Env returns the symbol environment of a checker.
func (c *Checker) Env() *sframe.ScopeFrameTree {
	return c.env
}

// Mode returns the error policy of a checker.
func (c *Checker) Mode() Mode {
	return c.mode
}

// Errors returns the diagnostics found so far, in order of detection.
// In FailFast mode the list contains at most one error.
func (c *Checker) Errors() mlang.ErrorList {
	return c.errors
}

// Reset clears the list of diagnostics. The environment is kept.
func (c *Checker) Reset() {
	c.errors = nil
}

// Check type checks a program within a symbol environment. It returns the
// program if it is well-typed, or the list of diagnostics otherwise. In
// FailFast mode this list contains exactly one error.
func Check(prog *grammar.Program, env *sframe.ScopeFrameTree, mode Mode) (*grammar.Program, mlang.ErrorList) {
	if prog == nil {
		err := mlang.NewError(mlang.TypeCheckerComponent, mlang.NoSpan, "No program to check")
		return nil, mlang.ErrorList{err.Wrap(ErrNoProgram)}
	}
	c := NewChecker(env, mode)
	c.Check(prog)
	if len(c.errors) > 0 {
		return nil, c.errors
	}
	return prog, nil
}

// CheckStatements checks statements within the current scope of the
// checker's environment, without opening a program scope. Bindings made by
// the statements are therefore visible to subsequent calls.
func (c *Checker) CheckStatements(stmts []grammar.Statement) error {
	for _, stmt := range stmts {
		if _, err := c.Check(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Check infers the type of a syntax node. Statements are of type mlang.None.
//
// In FailFast mode, the first error aborts checking and is returned.
// In Collect mode errors are recorded (see Errors) and the returned error is
// nil, except for malformed trees.
func (c *Checker) Check(node grammar.Node) (mlang.Type, error) {
	switch n := node.(type) {
	// statements
	case *grammar.Program:
		return c.checkProgram(n)
	case *grammar.Block:
		return c.Check(n.Body)
	case *grammar.Assignment:
		return c.checkAssignment(n)
	case *grammar.OpAssignment:
		return c.checkOpAssignment(n)
	case *grammar.Instruction:
		return c.checkInstruction(n)
	case *grammar.While:
		return c.checkWhile(n)
	case *grammar.For:
		return c.checkFor(n)
	case *grammar.If:
		return c.checkIf(n)
	// expressions
	case *grammar.Constant:
		return mlang.Scalar(n.Kind), nil
	case *grammar.Vector:
		return c.checkVector(n)
	case *grammar.Range:
		return c.checkRange(n)
	case *grammar.Operator:
		return c.checkOperator(n)
	case *grammar.Function:
		return c.checkFunction(n)
	case *grammar.Identifier:
		return c.checkIdentifier(n)
	case *grammar.Selector:
		return c.checkSelector(n)
	}
	span := mlang.NoSpan
	if node != nil {
		span = node.Span()
	}
	err := mlang.NewError(mlang.TypeCheckerComponent, span, "No type check implemented for %T", node)
	c.errors.Add(err)
	return mlang.None, err
}

// fail records a diagnostic. It returns a non-nil error in FailFast mode,
// which the caller has to return immediately. In Collect mode it returns nil
// and the caller continues, substituting mlang.None where a type is missing.
func (c *Checker) fail(span mlang.Span, format string, args ...interface{}) error {
	err := mlang.NewError(mlang.TypeCheckerComponent, span, format, args...)
	tracer().Infof("%v", err)
	c.errors.Add(err)
	if c.mode == FailFast {
		return err
	}
	return nil
}

// inScope checks a statement within a new scope.
func (c *Checker) inScope(label string, stmt grammar.Statement) error {
	defer c.env.Enter(label)()
	_, err := c.Check(stmt)
	return err
}
