// Package quill embeds the Quill expression language in Go programs.
//
// An Engine owns a root scope holding the native functions and every
// binding made by previously executed programs, which makes it suitable
// both for running script files and for driving an interactive session:
//
//	engine, err := quill.New(quill.Options{Output: os.Stdout})
//	if err != nil {
//		return err
//	}
//	result, err := engine.Execute(ctx, `fib = fn(n) if n < 2 then n else fib(n-1) + fib(n-2); fib(10)`)
//	if err != nil {
//		return err
//	}
//	fmt.Println(result) // 55
//
// The language itself lives in the subpackages: parser (InputStream,
// TokenStream and the precedence-climbing parser), ast (node types,
// printer and equality), environment (scope chain), evaluator and
// registry (natives such as print and println).
//
// Errors are *qerror.Error values from foundation/core/error with one of
// the codes LEXICAL_ERROR, PARSE_ERROR, EVALUATION_ERROR,
// CALL_DEPTH_EXCEEDED or CANCELED. The first error aborts the run; a
// failed evaluation is logged together with the scope chain dump.
package quill
