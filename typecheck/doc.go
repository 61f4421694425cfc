/*
Package typecheck implements static type checking of syntax trees.

The checker walks a syntax tree bottom-up and infers a type for every
expression, including the shapes of arrays. Statements have type
mlang.None. Variables get their types from assignments: checking is
flow-sensitive and single-pass, so a statement sees the bindings of the
statements before it, and re-assigning a variable with a value of a
different type re-binds it.

Scopes are kept in a caller-supplied sframe.ScopeFrameTree. Programs and
blocks, loop bodies and the branches of conditionals each get a scope of
their own; `break` and `continue` are legal if any enclosing scope is a loop
scope.

Modes

In FailFast mode checking stops at the first error. In Collect mode errors
are collected, the offending expression's type is replaced by mlang.None
and checking continues, so independent errors are found in a single pass.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package typecheck

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mlang.types'.
func tracer() tracing.Trace {
	return tracing.Select("mlang.types")
}
