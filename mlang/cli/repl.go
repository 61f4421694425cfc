package cli

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/npillmayer/mlang/grammar"
	"github.com/npillmayer/mlang/mlang/ui/termui"
	"github.com/npillmayer/mlang/sframe"
	"github.com/npillmayer/mlang/typecheck"
	"github.com/npillmayer/schuko/tracing"
)

// mlangIntpr is an interactive interpreter. It type checks statements
// incrementally: bindings of a statement are visible to all subsequent
// ones.
type mlangIntpr struct {
	*termui.BaseREPL
	checker   *typecheck.Checker
	formatter termui.Formatter
	pending   []string // lines of an incomplete statement
	out       io.Writer
}

// newSession creates the checking part of an interpreter, without a terminal.
func newSession(out io.Writer, mode typecheck.Mode) *mlangIntpr {
	return &mlangIntpr{
		checker:   typecheck.NewChecker(sframe.NewScopeFrameTree(), mode),
		formatter: termui.DefaultFormatter{},
		out:       out,
	}
}

// startREPL runs an interactive session. Files in preload are checked first,
// their bindings being visible in the session.
func startREPL(mode typecheck.Mode, preload ...string) error {
	repl, err := termui.NewBaseREPL("mlang", Version, "vars", "ops", "reset")
	if err != nil {
		return err
	}
	stdout, _ := repl.Outputs()
	intp := newSession(stdout, mode)
	intp.BaseREPL = repl
	repl.Interpreter = intp
	repl.Helper = displayHelp
	for _, fname := range preload {
		if err := intp.preload(fname); err != nil {
			return err
		}
	}
	tracing.Infof("starting interactive session in %s mode", mode)
	repl.Prompt(false)
	return nil
}

func displayHelp(w io.Writer) {
	io.WriteString(w, "  vars               : list variables and their types\n")
	io.WriteString(w, "  ops                : list operators and builtin functions\n")
	io.WriteString(w, "  reset              : forget all variables\n")
	io.WriteString(w, "\nAny other input is parsed and type checked as M statements.\n")
}

// InterpretCommand is part of interface termui.REPLCommandInterpreter.
// It returns true if the input so far is an incomplete statement.
func (intp *mlangIntpr) InterpretCommand(input string) bool {
	if len(intp.pending) == 0 {
		switch strings.TrimSpace(input) {
		case "vars":
			intp.show(scopesTable(intp.checker.Env()))
			return false
		case "ops":
			intp.show(operatorTable())
			intp.show(builtinTable())
			return false
		case "reset":
			intp.checker = typecheck.NewChecker(sframe.NewScopeFrameTree(), intp.checker.Mode())
			intp.show("all variables cleared")
			return false
		}
	}
	intp.pending = append(intp.pending, input)
	source := strings.Join(intp.pending, "\n")
	prog, err := grammar.ParseString(source)
	if err != nil {
		if errors.Is(err, grammar.ErrUnexpectedEOF) {
			return true
		}
		intp.pending = nil
		intp.show(asDiagnostics(err))
		return false
	}
	intp.pending = nil
	intp.check(prog.Statements)
	return false
}

// check type checks statements and prints either their diagnostics or the
// type of each variable assigned to.
func (intp *mlangIntpr) check(stmts []grammar.Statement) {
	defer intp.checker.Reset()
	intp.checker.CheckStatements(stmts)
	if errs := intp.checker.Errors(); len(errs) > 0 {
		intp.show(errs)
		return
	}
	for _, stmt := range stmts {
		if name, ok := assignedName(stmt); ok {
			if t, found := intp.checker.Env().Lookup(name); found {
				intp.show(fmt.Sprintf("%s : %s", name, t))
			}
		}
	}
}

// preload checks a source file within the session's environment.
func (intp *mlangIntpr) preload(fname string) error {
	src, err := ioutil.ReadFile(fname)
	if err != nil {
		return err
	}
	prog, err := grammar.ParseString(string(src))
	if err != nil {
		intp.show(asDiagnostics(err))
		return errCheckFailed
	}
	defer intp.checker.Reset()
	intp.checker.CheckStatements(prog.Statements)
	if errs := intp.checker.Errors(); len(errs) > 0 {
		intp.show(errs)
		return errCheckFailed
	}
	tracer().Infof("preloaded %s", fname)
	return nil
}

func (intp *mlangIntpr) show(item interface{}) {
	if ok, err := intp.formatter.Format(item, intp.out); !ok || err != nil {
		tracer().Errorf("cannot display %T: %v", item, err)
	}
}

// assignedName returns the name of the variable a statement assigns to.
func assignedName(stmt grammar.Statement) (string, bool) {
	var target grammar.Variable
	switch s := stmt.(type) {
	case *grammar.Assignment:
		target = s.Target
	case *grammar.OpAssignment:
		target = s.Target
	default:
		return "", false
	}
	if id, ok := target.(*grammar.Identifier); ok {
		return id.Name, true
	}
	return "", false
}
