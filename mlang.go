/*
Package mlang is the front end of a compiler for a small matrix-oriented
scripting language. Programs consist of scalars, vectors and matrices,
structured control flow and a handful of builtin array constructors.

The front end has two phases: package grammar turns source text into a
syntax tree, package typecheck verifies that every expression and statement
is well-typed, including the shapes of arrays. This package holds what both
phases share: the type representation, source spans and the diagnostic
shape.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mlang

import (
	"context"
	"os"

	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mlang'.
func tracer() tracing.Trace {
	return tracing.Select("mlang")
}

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context = context.Background()

// Exit terminates the application with an exit code.
func Exit(errcode int) {
	os.Exit(errcode)
}
