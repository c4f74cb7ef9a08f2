// File: registry.go
// Title: Quill Native Function Registry
// Description: Holds the native functions a host exposes to Quill programs,
//              their aliases and the built-in print/println pair, and
//              installs them into a root scope as Function values.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-05
// Modified: 2025-02-11
//
// Change History:
// - 2025-02-05 v0.1.0: Initial registry with print/println
// - 2025-02-11 v0.1.1: Aliases and disabled builtins

package registry

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	qast "github.com/msto63/quill/foundation/quill/ast"
	"github.com/msto63/quill/foundation/quill/environment"
	qparser "github.com/msto63/quill/foundation/quill/parser"
	"github.com/msto63/quill/foundation/utils/stringx"
)

// Definition describes one native function
type Definition struct {
	Name        string          // Name bound in the root scope
	Description string          // Short help text
	Parameters  []string        // Informational parameter names
	Native      qast.NativeFunc // Implementation
}

// Options configures registry behavior
type Options struct {
	Logger   *qlog.Logger
	Output   io.Writer // Destination of print/println, defaults to os.Stdout
	Disabled []string  // Builtins that are not registered
}

// Registry stores native definitions by name
type Registry struct {
	defs    map[string]*Definition
	aliases map[string]string
	logger  *qlog.Logger
	mutex   sync.RWMutex
	options Options
}

// New creates a registry holding the enabled builtins
func New(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = qlog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Registry{
		defs:    make(map[string]*Definition),
		aliases: make(map[string]string),
		logger:  opts.Logger.WithField("component", "quill-registry"),
		options: opts,
	}

	disabled := make(map[string]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		disabled[name] = true
	}
	for _, def := range builtins(opts.Output) {
		if disabled[def.Name] {
			continue
		}
		if err := r.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register builtin %s: %w", def.Name, err)
		}
	}

	r.logger.Debug("Quill registry initialized", qlog.Fields{
		"functions": len(r.defs),
		"disabled":  len(disabled),
	})

	return r, nil
}

// Register adds a native definition
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return qerror.New("definition cannot be nil").WithCode(qerror.CodeInvalidInput)
	}
	if err := validateName(def.Name); err != nil {
		return err
	}
	if def.Native == nil {
		return qerror.Newf("native function %s has no implementation", def.Name).
			WithCode(qerror.CodeInvalidInput)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.taken(def.Name) {
		return qerror.Newf("native function %s already registered", def.Name).
			WithCode(qerror.CodeInvalidInput)
	}
	r.defs[def.Name] = def

	r.logger.Debug("Native function registered", qlog.Fields{
		"name":       def.Name,
		"parameters": len(def.Parameters),
	})
	return nil
}

// RegisterAlias binds alias to an already registered function
func (r *Registry) RegisterAlias(alias, name string) error {
	if err := validateName(alias); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.defs[name]; !ok {
		return qerror.Newf("cannot alias %s: native function %s not found", alias, name).
			WithCode(qerror.CodeNotFound)
	}
	if r.taken(alias) {
		return qerror.Newf("alias %s is already in use", alias).WithCode(qerror.CodeInvalidInput)
	}
	r.aliases[alias] = name

	r.logger.Debug("Native alias registered", qlog.Fields{
		"alias": alias,
		"name":  name,
	})
	return nil
}

// Has reports whether name is a registered function or alias
func (r *Registry) Has(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.taken(name)
}

// Get returns the definition for a function name or alias
func (r *Registry) Get(name string) (*Definition, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if target, ok := r.aliases[name]; ok {
		name = target
	}
	def, ok := r.defs[name]
	if !ok {
		return nil, qerror.Newf("native function %s not found", name).WithCode(qerror.CodeNotFound)
	}
	return def, nil
}

// Names returns the sorted function names, without aliases
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns a copy of the alias table
func (r *Registry) Aliases() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[string]string, len(r.aliases))
	for alias, name := range r.aliases {
		result[alias] = name
	}
	return result
}

// Install defines every function and alias in scope and returns how many
// bindings were made
func (r *Registry) Install(scope *environment.Environment) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for name, def := range r.defs {
		scope.Def(name, toFunction(name, def))
	}
	for alias, name := range r.aliases {
		scope.Def(alias, toFunction(alias, r.defs[name]))
	}

	count := len(r.defs) + len(r.aliases)
	r.logger.Trace("Natives installed", qlog.Fields{"bindings": count})
	return count
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.defs[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

func toFunction(name string, def *Definition) *qast.Function {
	params := make([]string, len(def.Parameters))
	copy(params, def.Parameters)
	return &qast.Function{Name: name, Parameters: params, Native: def.Native}
}

// validateName accepts names the lexer reads as a single identifier
func validateName(name string) error {
	if stringx.IsBlank(name) {
		return qerror.New("function name cannot be empty").WithCode(qerror.CodeInvalidInput)
	}
	tokens, err := qparser.Tokenize(name)
	if err != nil || len(tokens) != 1 || tokens[0].Type != qparser.TokenIdentifier || tokens[0].Text != name {
		return qerror.Newf("invalid function name %q", name).WithCode(qerror.CodeInvalidInput)
	}
	return nil
}
