// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/mlang"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mlang.cli'.
func tracer() tracing.Trace {
	return tracing.Select("mlang.cli")
}

// Formatter writes items of the front end to an output.
// It returns false if it does not know how to format an item.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter formats types, diagnostics, tables and strings.
type DefaultFormatter struct{}

var _ Formatter = DefaultFormatter{}

func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	var err error
	switch t := item.(type) {
	case string:
		_, err = fmt.Fprintf(w, "▶ %s\n", t)
	case mlang.Type:
		_, err = fmt.Fprintf(w, "▶ %s\n", prtxt.FgCyan.Sprint(t.String()))
	case *mlang.CompilerError:
		_, err = fmt.Fprintf(w, "%s %s\n", prtxt.FgRed.Sprint("✖"), t.Error())
	case mlang.ErrorList:
		for _, e := range t {
			if _, err = df.Format(e, w); err != nil {
				break
			}
		}
	case table.Writer:
		_, err = fmt.Fprintln(w, t.Render())
	case error:
		_, err = fmt.Fprintf(w, "%s %v\n", prtxt.FgRed.Sprint("✖"), t)
	default:
		return false, nil
	}
	return err == nil, err
}
