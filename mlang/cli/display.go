package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/mlang"
	"github.com/npillmayer/mlang/corelang"
	"github.com/npillmayer/mlang/grammar"
	"github.com/npillmayer/mlang/sframe"
)

// fileError is a diagnostic for a source file.
type fileError struct {
	file string
	err  *mlang.CompilerError
}

// --- Property tables for various types -------------------------------------

func diagnosticsTable(errs []fileError) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("%d error(s)", len(errs))
	tw.AppendHeader(table.Row{"file", "line", "component", "message"})
	for _, e := range errs {
		tw.AppendRow(table.Row{e.file, lineString(e.err.Span), e.err.Component, e.err.Message})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func lineString(span mlang.Span) string {
	if span.From < 0 {
		return "–"
	}
	return span.String()
}

// scopesTable lists all bindings of an environment, innermost scope first.
func scopesTable(env *sframe.ScopeFrameTree) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"scope", "name", "type"})
	env.Each(func(sf *sframe.ScopeFrame) bool {
		for _, name := range sf.Names() {
			t, _ := sf.Resolve(name)
			tw.AppendRow(table.Row{sf.Label, name, t.String()})
		}
		return true
	})
	tw.SetStyle(table.StyleLight)
	return tw
}

func tokenTable(tokens []grammar.Token) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"line", "category", "lexeme", "value"})
	for _, t := range tokens {
		value := "–"
		if t.Value != nil {
			value = fmt.Sprintf("%v", t.Value)
		}
		tw.AppendRow(table.Row{t.Line, t.Type.String(), t.Lexeme, value})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func operatorTable() table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Operators")
	tw.AppendHeader(table.Row{"operator", "operands", "result"})
	for _, sig := range corelang.Signatures() {
		kinds := make([]string, len(sig.Operands))
		for i, k := range sig.Operands {
			kinds[i] = k.String()
		}
		tw.AppendRow(table.Row{sig.Op, strings.Join(kinds, " × "), sig.Result.String()})
	}
	tw.AppendRow(table.Row{"== !=", "any × any", "bool"})
	tw.AppendRow(table.Row{"'", "2d matrix", "transposed matrix"})
	tw.AppendRow(table.Row{".+ .- .* ./", "arrays of equal rank", "elementwise"})
	tw.SetStyle(table.StyleLight)
	return tw
}

func builtinTable() table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Builtin functions")
	tw.AppendHeader(table.Row{"function", "arguments", "result"})
	for _, b := range corelang.Builtins() {
		args := "any number of ints"
		if b.Arity >= 0 {
			args = fmt.Sprintf("%d ints", b.Arity)
		}
		tw.AppendRow(table.Row{b.Name, args, "float array"})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}
