/*
Package grammar implements the syntax of the language: token categories,
a scanner built on lexmachine, the syntax tree and a parser.

The grammar, in EBNF:

   program    := (statement program) | ε
   statement  := variable '=' expr ';'
               | variable ('+='|'-='|'*='|'/=') expr ';'
               | '{' program '}'
               | 'print' expr (',' expr)* ';'
               | 'break' ';' | 'continue' ';'
               | 'return' expr ';'
               | 'while' '(' expr ')' statement
               | 'for' ID '=' range statement
               | 'if' '(' expr ')' statement ('else' statement)?
   range      := expr ':' expr
   variable   := ID | ID vector
   vector     := '[' (expr (',' expr)*)? ']'
   expr       := literal | '-' expr | expr '\'' | expr binop expr
               | func '(' (expr (',' expr)*)? ')' | vector | variable
   func       := 'eye' | 'zeros' | 'ones'

Operator precedence, from lowest to highest:

   if without else  <  else
   == != < > <= >=         non-associative
   + - .+ .-               left-associative
   * / .* ./               left-associative
   unary -                 right-associative
   postfix ' (transpose)   left-associative

Parse is a hand-written recursive descent parser. The same grammar is
available as a gorgo grammar (MakeGrammar), which is used to recognize
token streams with an Earley parser, independently of Parse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mlang.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("mlang.grammar")
}
