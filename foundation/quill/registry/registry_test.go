// File: registry_test.go
// Title: Quill Registry Tests
// Description: Tests registration, aliases, builtins and installation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-05
// Modified: 2025-02-11

package registry

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	qast "github.com/msto63/quill/foundation/quill/ast"
	"github.com/msto63/quill/foundation/quill/environment"
)

func newRegistry(t *testing.T, opts Options) (*Registry, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts.Logger = qlog.Discard()
	opts.Output = &out
	r, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r, &out
}

func identity(args []qast.Node) (qast.Node, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return args[0], nil
}

func TestNewRegistersBuiltins(t *testing.T) {
	r, _ := newRegistry(t, Options{})
	if diff := cmp.Diff([]string{"print", "println"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	r, _ = newRegistry(t, Options{Disabled: []string{"print"}})
	if r.Has("print") || !r.Has("println") {
		t.Errorf("disabled builtin still registered: %v", r.Names())
	}
}

func TestPrintBuiltins(t *testing.T) {
	r, out := newRegistry(t, Options{})

	args := []qast.Node{
		&qast.Number{Value: 14},
		&qast.String{Value: ", "},
		&qast.Boolean{Value: true},
	}
	for _, name := range []string{"print", "println"} {
		def, err := r.Get(name)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", name, err)
		}
		got, err := def.Native(args)
		if err != nil {
			t.Fatalf("%s() error = %v", name, err)
		}
		if !qast.Equal(got, &qast.Boolean{Value: true}) {
			t.Errorf("%s() = %v, want true", name, got)
		}
	}

	if want := "14, true14, true\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
		code qerror.Code
	}{
		{"nil definition", nil, qerror.CodeInvalidInput},
		{"empty name", &Definition{Name: " ", Native: identity}, qerror.CodeInvalidInput},
		{"keyword name", &Definition{Name: "if", Native: identity}, qerror.CodeInvalidInput},
		{"operator name", &Definition{Name: "a+b", Native: identity}, qerror.CodeInvalidInput},
		{"missing native", &Definition{Name: "id"}, qerror.CodeInvalidInput},
		{"duplicate", &Definition{Name: "print", Native: identity}, qerror.CodeInvalidInput},
	}

	r, _ := newRegistry(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.def)
			if !qerror.HasCode(err, tt.code) {
				t.Errorf("Register() error = %v, want code %v", err, tt.code)
			}
		})
	}

	if err := r.Register(&Definition{Name: "id", Native: identity}); err != nil {
		t.Fatalf("Register(id) error = %v", err)
	}
	if !r.Has("id") {
		t.Error("Has(id) = false after registration")
	}
}

func TestRegisterAlias(t *testing.T) {
	r, out := newRegistry(t, Options{})

	if err := r.RegisterAlias("puts", "println"); err != nil {
		t.Fatalf("RegisterAlias() error = %v", err)
	}
	if err := r.RegisterAlias("say", "missing"); !qerror.HasCode(err, qerror.CodeNotFound) {
		t.Errorf("alias to unknown function error = %v", err)
	}
	if err := r.RegisterAlias("print", "println"); !qerror.HasCode(err, qerror.CodeInvalidInput) {
		t.Errorf("alias shadowing a function error = %v", err)
	}

	def, err := r.Get("puts")
	if err != nil {
		t.Fatalf("Get(puts) error = %v", err)
	}
	if def.Name != "println" {
		t.Errorf("alias resolved to %s, want println", def.Name)
	}
	if _, err := def.Native([]qast.Node{&qast.String{Value: "hi"}}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hi\n" {
		t.Errorf("output = %q", out.String())
	}

	if diff := cmp.Diff(map[string]string{"puts": "println"}, r.Aliases()); diff != "" {
		t.Errorf("Aliases() mismatch (-want +got):\n%s", diff)
	}
	if _, err := r.Get("nope"); !qerror.HasCode(err, qerror.CodeNotFound) {
		t.Errorf("Get(nope) error = %v", err)
	}
}

func TestInstall(t *testing.T) {
	r, _ := newRegistry(t, Options{})
	if err := r.RegisterAlias("puts", "println"); err != nil {
		t.Fatal(err)
	}

	root := environment.New(nil)
	if n := r.Install(root); n != 3 {
		t.Errorf("Install() = %d, want 3", n)
	}
	if diff := cmp.Diff([]string{"print", "println", "puts"}, root.Names()); diff != "" {
		t.Errorf("installed names mismatch (-want +got):\n%s", diff)
	}

	value, err := root.Get("puts")
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := value.(*qast.Function)
	if !ok || !fn.IsNative() || fn.Name != "puts" {
		t.Errorf("puts bound to %v, want native function named puts", value)
	}
}
