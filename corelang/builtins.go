package corelang

import (
	"sort"

	"github.com/npillmayer/mlang"
)

// Builtin describes a builtin array constructor. Every builtin takes
// integer arguments, one per dimension of the float array it creates.
type Builtin struct {
	Name  string
	Arity int // required number of arguments, or -1 for any
}

var builtins = map[string]Builtin{
	"eye":   {Name: "eye", Arity: 2},
	"zeros": {Name: "zeros", Arity: -1},
	"ones":  {Name: "ones", Arity: -1},
}

// LookupBuiltin finds a builtin function by name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// Builtins returns the builtin functions sorted by name.
func Builtins() []Builtin {
	bs := make([]Builtin, 0, len(builtins))
	for _, b := range builtins {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].Name < bs[j].Name })
	return bs
}

// AcceptsArity is a predicate: may b be called with argc arguments?
func (b Builtin) AcceptsArity(argc int) bool {
	return b.Arity < 0 || b.Arity == argc
}

// ResultType returns the type of a call with argc arguments: a float array
// of rank argc with all dimension sizes unknown.
func (b Builtin) ResultType(argc int) mlang.Type {
	dims := make([]mlang.Dim, argc)
	for i := range dims {
		dims[i] = mlang.Unknown
	}
	return mlang.Array(mlang.FloatKind, dims...)
}
