// File: quill.go
// Title: Quill Engine
// Description: High-level interface that wires parser, evaluator and native
//              registry around one persistent root scope. Hosts hand it
//              source text and get the value of the last statement back.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-05
// Modified: 2025-02-11
//
// Change History:
// - 2025-02-05 v0.1.0: Initial engine implementation
// - 2025-02-11 v0.1.1: Run IDs, prelude, scope dump logging
// - 2025-02-14 v0.1.2: Optional program cache
// - 2025-02-17 v0.1.3: Failed reset keeps the previous root scope

package quill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	qast "github.com/msto63/quill/foundation/quill/ast"
	"github.com/msto63/quill/foundation/quill/environment"
	qeval "github.com/msto63/quill/foundation/quill/evaluator"
	qparser "github.com/msto63/quill/foundation/quill/parser"
	qregistry "github.com/msto63/quill/foundation/quill/registry"
	"github.com/msto63/quill/foundation/utils/stringx"
)

// Engine executes Quill programs against a persistent root scope.
// Execute calls are serialized.
type Engine struct {
	parser    *qparser.Parser
	evaluator *qeval.Evaluator
	registry  *qregistry.Registry
	root      *environment.Environment
	logger    *qlog.Logger
	options   Options
	mu        sync.Mutex
}

// Options configures the engine
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *qlog.Logger

	// Output receives print and println output (default: os.Stdout)
	Output io.Writer

	// MaxCallDepth bounds nested user-function calls (default: 10000)
	MaxCallDepth int

	// MaxSourceLength limits source size in bytes (default: 1 MiB)
	MaxSourceLength int

	// DisabledBuiltins lists builtins that are not installed
	DisabledBuiltins []string

	// Aliases maps extra names to registered natives
	Aliases map[string]string

	// Natives are installed next to the builtins
	Natives []*qregistry.Definition

	// Prelude sources run in the root scope on creation and reset
	Prelude []string

	// Timeout bounds each Execute call (0 disables)
	Timeout time.Duration

	// Programs caches parsed programs by source text (optional)
	Programs ProgramCache
}

// ProgramCache keeps parsed programs. Programs are never modified by
// evaluation, so one parse can serve any number of runs.
type ProgramCache interface {
	GetOrSet(source string, parse func() (*qast.Program, error)) (*qast.Program, error)
}

// Result is the outcome of one Execute call
type Result struct {
	Value      qast.Node     // Value of the last statement, nil if none
	RunID      string        // Identifier attached to the run's log entries
	Duration   time.Duration // Parse and evaluation time
	Statements int           // Number of top-level statements
}

// HasValue reports whether the last statement produced a value
func (r *Result) HasValue() bool {
	return r != nil && r.Value != nil
}

// String returns the value in source notation, or "" without a value
func (r *Result) String() string {
	if !r.HasValue() {
		return ""
	}
	return qast.Repr(r.Value)
}

// New creates an engine, installs the natives and runs the prelude
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = qlog.GetDefault()
	}
	if opts.MaxSourceLength == 0 {
		opts.MaxSourceLength = qparser.DefaultMaxInputLength
	}

	logger := opts.Logger.WithField("component", "quill-engine")

	p, err := qparser.New(qparser.Options{
		Logger:         opts.Logger,
		MaxInputLength: opts.MaxSourceLength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Quill parser: %w", err)
	}

	ev, err := qeval.New(qeval.Options{
		Logger:       opts.Logger,
		MaxCallDepth: opts.MaxCallDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Quill evaluator: %w", err)
	}

	reg, err := qregistry.New(qregistry.Options{
		Logger:   opts.Logger,
		Output:   opts.Output,
		Disabled: opts.DisabledBuiltins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Quill registry: %w", err)
	}
	for _, def := range opts.Natives {
		if err := reg.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register native: %w", err)
		}
	}
	for alias, name := range opts.Aliases {
		if err := reg.RegisterAlias(alias, name); err != nil {
			return nil, fmt.Errorf("failed to register alias: %w", err)
		}
	}

	engine := &Engine{
		parser:    p,
		evaluator: ev,
		registry:  reg,
		logger:    logger,
		options:   opts,
	}
	if err := engine.reset(context.Background()); err != nil {
		return nil, err
	}

	logger.Info("Quill engine initialized", qlog.Fields{
		"natives":         len(reg.Names()),
		"aliases":         len(opts.Aliases),
		"prelude":         len(opts.Prelude),
		"maxSourceLength": opts.MaxSourceLength,
		"timeout":         opts.Timeout,
		"programCache":    opts.Programs != nil,
	})

	return engine, nil
}

// Execute parses source and evaluates it in the root scope. Bindings made
// by a successful or failed run stay in the root scope.
func (e *Engine) Execute(ctx context.Context, source string) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.execute(ctx, source, e.root)
}

func (e *Engine) execute(ctx context.Context, source string, scope *environment.Environment) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.options.Timeout)
		defer cancel()
	}

	runID := uuid.New().String()
	logger := e.logger.WithRunID(runID)
	timer := logger.StartTimer("execute").WithField("source_bytes", len(source))

	logger.Debug("Executing Quill program", qlog.Fields{
		"source": stringx.Snippet(source, 80),
	})

	program, err := e.parse(source)
	if err != nil {
		timer.StopWithError(err)
		logger.Warn("Quill parsing failed", qlog.Fields{
			"error": err.Error(),
			"code":  string(qerror.GetCode(err)),
		})
		return nil, err
	}
	timer.Checkpoint("parsed")

	value, err := e.evaluator.Run(ctx, program, scope)
	if err != nil {
		timer.StopWithError(err)
		fields := qlog.Fields{
			"error": err.Error(),
			"code":  string(qerror.GetCode(err)),
		}
		if scopes, ok := scopeDump(err); ok {
			fields["scopes"] = scopes
		}
		logger.Error("Quill evaluation failed", fields)
		return nil, err
	}

	result := &Result{
		Value:      value,
		RunID:      runID,
		Duration:   time.Since(timer.StartTime()),
		Statements: len(program.Body),
	}
	timer.Stop()

	return result, nil
}

// Parse parses source without evaluating it
func (e *Engine) Parse(source string) (*qast.Program, error) {
	return e.parse(source)
}

func (e *Engine) parse(source string) (*qast.Program, error) {
	if e.options.Programs == nil {
		return e.parser.Parse(source)
	}
	return e.options.Programs.GetOrSet(source, func() (*qast.Program, error) {
		return e.parser.Parse(source)
	})
}

// Tokenize splits source into tokens, applying the source length limit
func (e *Engine) Tokenize(source string) ([]qparser.Token, error) {
	if len(source) > e.options.MaxSourceLength {
		return nil, qerror.Newf("source exceeds maximum length: %d > %d", len(source), e.options.MaxSourceLength).
			WithCode(qerror.CodeInvalidInput)
	}
	return qparser.Tokenize(source)
}

// Define binds name in the root scope
func (e *Engine) Define(name string, value qast.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.root.Def(name, value)
}

// Root returns the root scope. It must not be used while Execute runs.
func (e *Engine) Root() *environment.Environment {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.root
}

// Registry returns the native function registry
func (e *Engine) Registry() *qregistry.Registry {
	return e.registry
}

// Reset discards all bindings, reinstalls the natives and reruns the prelude.
// If a prelude fails the previous root scope is kept.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.reset(ctx)
}

func (e *Engine) reset(ctx context.Context) error {
	root := environment.New(nil)
	e.registry.Install(root)

	// The previous root stays in place until every prelude succeeds
	for i, source := range e.options.Prelude {
		if _, err := e.execute(ctx, source, root); err != nil {
			return qerror.Wrap(err, fmt.Sprintf("prelude %d failed", i+1)).WithOperation("prelude")
		}
	}
	e.root = root

	e.logger.Debug("Root scope reset", qlog.Fields{
		"bindings": e.root.Len(),
	})
	return nil
}

// scopeDump extracts the scope chain attached to an evaluation error
func scopeDump(err error) ([]string, bool) {
	var qErr *qerror.Error
	if !errors.As(err, &qErr) {
		return nil, false
	}
	v, ok := qErr.Detail(environment.DetailScopes)
	if !ok {
		return nil, false
	}
	dump, ok := v.([]string)
	return dump, ok
}
