// Package parser turns Quill source text into an AST.
//
// The pipeline is InputStream (runes with line and column tracking),
// TokenStream (tokens with one token of lookahead) and Parser (recursive
// descent with precedence climbing). Precedence from loosest to tightest:
//
//	=                       1  (right associative)
//	||                      2
//	&&                      3
//	< > <= >= == !=         7
//	+ -                     10
//	* / %                   20
//
// Errors carry the LEXICAL_ERROR or PARSE_ERROR code and the position of
// the offending token.
//
// Usage:
//
//	p, err := parser.New(parser.Options{Logger: logger})
//	program, err := p.Parse("fib = fn(n) if n < 2 then n else fib(n - 1) + fib(n - 2); fib(10)")
package parser
