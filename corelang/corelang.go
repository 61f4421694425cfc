/*
Package corelang holds the static semantics of the language core: the
operator table, which maps an operator and a tuple of operand types to a
result type, and the table of builtin functions.

Operators

Arithmetic and relational operators are defined on scalars only:

   + - *        int × int → int, otherwise numbers promote to float
   /            number × number → float
   +            string × string → string
   < > <= >=    number × number → bool, string × string → bool
   - (unary)    int → int, float → float

Elementwise operators (.+ .- .* ./) apply the corresponding scalar operator
to the element kinds of two arrays of equal rank. Their shapes are unified
by MergeShapes. The operators == and != accept any operands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package corelang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mlang.core'.
func tracer() tracing.Trace {
	return tracing.Select("mlang.core")
}
