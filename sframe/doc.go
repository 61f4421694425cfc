/*
Package sframe implements the symbol environment of the type checker: a
stack of nested scope frames. Every frame is labeled with the syntactic
construct it has been opened for (program, loop, then, else) and maps
variable names to their static types.

Name lookup searches from the innermost frame outwards, with the first
match winning, so inner bindings shadow outer ones. Label queries search
the whole stack, which allows a `break` inside an `if` to find the
enclosing loop.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sframe

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'mlang.scope'
func tracer() tracing.Trace {
	return tracing.Select("mlang.scope")
}
