// File: environment.go
// Title: Quill Scope Chain
// Description: Implements scopes as frames of name to value bindings
//              linked to an optional parent. Definitions only ever write
//              the frame they are called on; lookups walk the ancestors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-04 v0.1.0: Initial scope chain
// - 2025-02-10 v0.1.1: Dump attached to undefined variable errors

package environment

import (
	"fmt"
	"io"
	"sort"
	"strings"

	qerror "github.com/msto63/quill/foundation/core/error"
	qast "github.com/msto63/quill/foundation/quill/ast"
)

// DetailScopes is the error detail key holding the scope dump
const DetailScopes = "scopes"

// Environment is one scope frame
type Environment struct {
	bindings map[string]qast.Node
	parent   *Environment
}

// New creates an empty scope chained to parent, which may be nil
func New(parent *Environment) *Environment {
	return &Environment{
		bindings: make(map[string]qast.Node),
		parent:   parent,
	}
}

// Def binds name in this scope only, replacing an existing binding
func (e *Environment) Def(name string, value qast.Node) {
	e.bindings[name] = value
}

// Get resolves name in this scope or its ancestors. An unknown name is an
// evaluation error carrying the dump of the whole chain.
func (e *Environment) Get(name string) (qast.Node, error) {
	if value, ok := e.Lookup(name); ok {
		return value, nil
	}
	return nil, qerror.Newf("Undefined variable '%s'", name).
		WithCode(qerror.CodeEvaluation).
		WithDetail(DetailScopes, e.Dump())
}

// Lookup resolves name without failing
func (e *Environment) Lookup(name string) (qast.Node, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if value, ok := scope.bindings[name]; ok {
			return value, true
		}
	}
	return nil, false
}

// Has reports whether name is bound in this scope, ignoring ancestors
func (e *Environment) Has(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Parent returns the enclosing scope, nil for a root
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Root returns the outermost ancestor
func (e *Environment) Root() *Environment {
	scope := e
	for scope.parent != nil {
		scope = scope.parent
	}
	return scope
}

// Depth returns the number of ancestors
func (e *Environment) Depth() int {
	depth := 0
	for scope := e.parent; scope != nil; scope = scope.parent {
		depth++
	}
	return depth
}

// Names returns the names bound in this scope, sorted
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings in this scope
func (e *Environment) Len() int {
	return len(e.bindings)
}

// Dump renders every scope from this one up to the root, one frame per
// entry. Frame 0 is the innermost scope.
func (e *Environment) Dump() []string {
	var frames []string
	level := 0
	for scope := e; scope != nil; scope = scope.parent {
		var sb strings.Builder
		fmt.Fprintf(&sb, "scope %d {", level)
		names := scope.Names()
		for i, name := range names {
			if i > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, " %s = %s", name, qast.Repr(scope.bindings[name]))
		}
		if len(names) > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("}")
		frames = append(frames, sb.String())
		level++
	}
	return frames
}

// WriteDump writes Dump to w, one frame per line
func (e *Environment) WriteDump(w io.Writer) error {
	for _, frame := range e.Dump() {
		if _, err := fmt.Fprintln(w, frame); err != nil {
			return err
		}
	}
	return nil
}
