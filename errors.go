package mlang

import (
	"fmt"
	"strings"
)

// Span is a range of source lines, first and last line inclusive.
type Span struct {
	From, To int
}

// NoSpan is used for diagnostics without a source location, e.g. at the
// end of input.
var NoSpan = Span{From: -1, To: -1}

// Lines creates a span from line from to line to.
func Lines(from, to int) Span {
	if to < from {
		to = from
	}
	return Span{From: from, To: to}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if s.From < 0 {
		return other
	}
	if other.From < 0 {
		return s
	}
	if other.From < s.From {
		s.From = other.From
	}
	if other.To > s.To {
		s.To = other.To
	}
	return s
}

func (s Span) String() string {
	if s.From == s.To {
		return fmt.Sprintf("%d", s.From)
	}
	return fmt.Sprintf("%d-%d", s.From, s.To)
}

// Components reporting diagnostics.
const (
	ScannerComponent     = "Scanner"
	ParserComponent      = "Parser"
	TypeCheckerComponent = "TypeChecker"
)

// CompilerError is a location-tagged diagnostic. All phases of the front end
// report errors of this shape, so clients may render them uniformly.
type CompilerError struct {
	Component string // phase reporting the error
	Span      Span   // source lines of the offending construct
	Message   string
	err       error // optional underlying error
}

// NewError creates a diagnostic for a component.
func NewError(component string, span Span, format string, args ...interface{}) *CompilerError {
	return &CompilerError{
		Component: component,
		Span:      span,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Wrap attaches an underlying error to a diagnostic, to be found with
// errors.Is and errors.As.
func (e *CompilerError) Wrap(err error) *CompilerError {
	e.err = err
	return e
}

// Line returns the first line of the diagnostic's span, or -1.
func (e *CompilerError) Line() int {
	return e.Span.From
}

func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s error at line %d: %s", e.Component, e.Span.From, e.Message)
}

func (e *CompilerError) Unwrap() error {
	return e.err
}

// ErrorList is an ordered list of diagnostics.
type ErrorList []*CompilerError

// Add appends a diagnostic.
func (l *ErrorList) Add(err *CompilerError) {
	tracer().P("component", err.Component).Debugf("line %s: %s", err.Span, err.Message)
	*l = append(*l, err)
}

// Err returns the list as an error, or nil if it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d errors:", len(l)))
	for _, e := range l {
		b.WriteString("\n\t")
		b.WriteString(e.Error())
	}
	return b.String()
}
