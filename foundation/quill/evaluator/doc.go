// Package evaluator interprets Quill ASTs.
//
// Evaluation walks the tree against an environment.Environment. Numbers,
// strings, booleans and functions evaluate to themselves; programs and
// assignments produce no value (a nil Node). Blocks, operands, conditions
// and branches each run in a fresh child scope, so names they define do
// not leak outward.
//
// Functions do not capture their defining scope. A call creates a scope
// whose parent is the caller's scope, and free names in the body resolve
// there.
//
// Basic usage:
//
//	ev, err := evaluator.New(evaluator.Options{})
//	if err != nil {
//		return err
//	}
//	value, err := ev.Run(ctx, program, environment.New(nil))
//
// Every failure is a *qerror.Error. Evaluation errors carry the node
// position and the scope dump under environment.DetailScopes.
package evaluator
