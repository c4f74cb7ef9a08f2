// File: evaluator.go
// Title: Quill Tree-Walking Evaluator
// Description: Interprets AST nodes against a scope chain. Literals and
//              functions evaluate to themselves, statements produce no
//              value, and every failure aborts the run with an error that
//              carries the position and the scope dump.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-04 v0.1.0: Initial evaluator
// - 2025-02-10 v0.1.1: Call depth limit, cancellation, block scopes

package evaluator

import (
	"context"
	"fmt"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	qast "github.com/msto63/quill/foundation/quill/ast"
	"github.com/msto63/quill/foundation/quill/environment"
)

// DefaultMaxCallDepth bounds nested user-function calls
const DefaultMaxCallDepth = 10000

// Evaluator interprets Quill programs. It keeps no per-run state and may
// be shared, but the scopes handed to it must not be used concurrently.
type Evaluator struct {
	logger  *qlog.Logger
	options Options
}

// Options configures evaluator behavior
type Options struct {
	Logger       *qlog.Logger
	MaxCallDepth int
}

// New creates a new evaluator with the given options
func New(opts Options) (*Evaluator, error) {
	if opts.Logger == nil {
		opts.Logger = qlog.GetDefault()
	}
	if opts.MaxCallDepth == 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	if opts.MaxCallDepth < 0 {
		return nil, qerror.Newf("invalid max call depth: %d", opts.MaxCallDepth).
			WithCode(qerror.CodeInvalidInput)
	}

	return &Evaluator{
		logger:  opts.Logger.WithField("component", "quill-evaluator"),
		options: opts,
	}, nil
}

// Evaluate interprets node in scope. The result is nil for nodes that
// produce no value, such as programs and assignments.
func (e *Evaluator) Evaluate(ctx context.Context, node qast.Node, scope *environment.Environment) (qast.Node, error) {
	x := e.newExecution(ctx)
	return x.eval(node, scope)
}

// Run evaluates the statements of program directly in scope and returns
// the value of the last one.
func (e *Evaluator) Run(ctx context.Context, program *qast.Program, scope *environment.Environment) (qast.Node, error) {
	if program == nil {
		return nil, qerror.New("program cannot be nil").WithCode(qerror.CodeInvalidInput)
	}

	x := e.newExecution(ctx)
	var last qast.Node
	for _, stmt := range program.Body {
		if err := x.checkContext(scope); err != nil {
			return nil, err
		}
		value, err := x.eval(stmt, scope)
		if err != nil {
			return nil, err
		}
		last = value
	}

	e.logger.Debug("Program evaluated", qlog.Fields{
		"statements": len(program.Body),
		"calls":      x.calls,
		"max_depth":  x.maxDepth,
	})

	return last, nil
}

// execution is the state of one Evaluate or Run call
type execution struct {
	ctx      context.Context
	e        *Evaluator
	trace    bool
	depth    int
	maxDepth int
	calls    int
}

func (e *Evaluator) newExecution(ctx context.Context) *execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &execution{
		ctx:   ctx,
		e:     e,
		trace: e.logger.IsLevelEnabled(qlog.LevelTrace),
	}
}

func (x *execution) eval(node qast.Node, scope *environment.Environment) (qast.Node, error) {
	switch n := node.(type) {
	case *qast.Number, *qast.String, *qast.Boolean, *qast.Function:
		return node, nil
	case *qast.Variable:
		value, err := scope.Get(n.Name)
		if err != nil {
			return nil, atPosition(err, n.Pos)
		}
		return value, nil
	case *qast.Program:
		for _, stmt := range n.Body {
			if _, err := x.eval(stmt, scope); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case *qast.Block:
		return x.eval(n.Body, environment.New(scope))
	case *qast.Assign:
		return nil, x.evalAssign(n, scope)
	case *qast.Call:
		return x.evalCall(n, scope)
	case *qast.If:
		return x.evalIf(n, scope)
	case *qast.Binary:
		return x.evalBinary(n, scope)
	case nil:
		return nil, qerror.New("cannot evaluate a nil node").WithCode(qerror.CodeInternal)
	default:
		return nil, x.errorf(node, scope, qerror.CodeInternal, "Unsupported node: %s", node.Kind())
	}
}

func (x *execution) evalAssign(n *qast.Assign, scope *environment.Environment) error {
	target, ok := n.Left.(*qast.Variable)
	if !ok {
		return x.errorf(n, scope, qerror.CodeEvaluation,
			"Can only assign to a variable: %s = %s", n.Left, n.Right)
	}

	value, err := x.eval(n.Right, environment.New(scope))
	if err != nil {
		return err
	}
	if value == nil {
		return x.errorf(n, scope, qerror.CodeEvaluation,
			"Assignment to '%s' produced no value", target.Name)
	}

	scope.Def(target.Name, value)
	return nil
}

func (x *execution) evalCall(n *qast.Call, scope *environment.Environment) (qast.Node, error) {
	callee, ok := n.Function.(*qast.Variable)
	if !ok {
		return nil, x.errorf(n, scope, qerror.CodeEvaluation, "Cannot call non-function '%s'", n.Function)
	}

	value, err := scope.Get(callee.Name)
	if err != nil {
		return nil, atPosition(err, callee.Pos)
	}
	fn, ok := value.(*qast.Function)
	if !ok {
		return nil, x.errorf(n, scope, qerror.CodeEvaluation,
			"Cannot call non-function '%s' (%s)", callee.Name, qast.Repr(value))
	}

	x.calls++
	if fn.Native != nil {
		return x.callNative(n, callee.Name, fn, scope)
	}
	return x.callUser(n, callee.Name, fn, scope)
}

// callNative evaluates arguments in the calling scope and drops those
// that produce no value
func (x *execution) callNative(n *qast.Call, name string, fn *qast.Function, scope *environment.Environment) (qast.Node, error) {
	args := make([]qast.Node, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		value, err := x.eval(arg, scope)
		if err != nil {
			return nil, err
		}
		if value != nil {
			args = append(args, value)
		}
	}

	if x.trace {
		x.e.logger.Trace("Calling native function", qlog.Fields{
			"function": name,
			"args":     len(args),
		})
	}

	result, err := fn.Native(args)
	if err != nil {
		wrapped := qerror.Wrap(err, fmt.Sprintf("native function '%s' failed", name))
		if wrapped.Code() == qerror.CodeUnknown {
			wrapped.WithCode(qerror.CodeEvaluation)
		}
		if n.Pos.IsValid() {
			wrapped.WithPosition(n.Pos.Line, n.Pos.Column)
		}
		return nil, wrapped
	}
	return result, nil
}

// callUser binds parameters in a new scope whose parent is the calling
// scope. Missing or valueless arguments bind false; extra arguments are
// not evaluated.
func (x *execution) callUser(n *qast.Call, name string, fn *qast.Function, scope *environment.Environment) (qast.Node, error) {
	if err := x.checkContext(scope); err != nil {
		return nil, err
	}
	if x.depth >= x.e.options.MaxCallDepth {
		return nil, x.errorf(n, scope, qerror.CodeCallDepthExceeded,
			"Maximum call depth of %d exceeded calling '%s'", x.e.options.MaxCallDepth, name)
	}

	fnScope := environment.New(scope)
	for i, param := range fn.Parameters {
		var value qast.Node
		if i < len(n.Arguments) {
			v, err := x.eval(n.Arguments[i], environment.New(scope))
			if err != nil {
				return nil, err
			}
			value = v
		}
		if value == nil {
			value = &qast.Boolean{Value: false, Pos: n.Pos}
		}
		fnScope.Def(param, value)
	}

	if x.trace {
		x.e.logger.Trace("Calling function", qlog.Fields{
			"function": name,
			"depth":    x.depth + 1,
		})
	}

	x.depth++
	if x.depth > x.maxDepth {
		x.maxDepth = x.depth
	}
	result, err := x.eval(fn.Body, fnScope)
	x.depth--

	return result, err
}

func (x *execution) evalIf(n *qast.If, scope *environment.Environment) (qast.Node, error) {
	cond, err := x.eval(n.Condition, environment.New(scope))
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*qast.Boolean)
	if !ok {
		return nil, x.errorf(n, scope, qerror.CodeEvaluation,
			"Condition must evaluate to boolean, got %s", describe(cond))
	}

	switch {
	case b.Value:
		return x.eval(n.Then, environment.New(scope))
	case n.Otherwise != nil:
		return x.eval(n.Otherwise, environment.New(scope))
	default:
		return &qast.Boolean{Value: false, Pos: n.Pos}, nil
	}
}

func (x *execution) checkContext(scope *environment.Environment) error {
	if err := x.ctx.Err(); err != nil {
		return qerror.Wrap(err, "evaluation canceled").
			WithCode(qerror.CodeCanceled).
			WithDetail(environment.DetailScopes, scope.Dump())
	}
	return nil
}

// errorf builds an error at node carrying the dump of scope
func (x *execution) errorf(node qast.Node, scope *environment.Environment, code qerror.Code, format string, args ...interface{}) error {
	err := qerror.New(fmt.Sprintf(format, args...)).
		WithCode(code).
		WithDetail(environment.DetailScopes, scope.Dump())
	if pos := node.Position(); pos.IsValid() {
		err.WithPosition(pos.Line, pos.Column)
	}
	return err
}

// atPosition records pos on err when err has no position yet
func atPosition(err error, pos qast.Position) error {
	qErr, ok := err.(*qerror.Error)
	if !ok || !pos.IsValid() {
		return err
	}
	if _, _, has := qErr.Position(); !has {
		qErr.WithPosition(pos.Line, pos.Column)
	}
	return qErr
}

// describe names a possibly missing value for messages
func describe(value qast.Node) string {
	if value == nil {
		return "no value"
	}
	return fmt.Sprintf("%s %s", value.Kind(), qast.Repr(value))
}
