// File: error_integration_test.go
// Title: Quill Error Integration Tests
// Description: Checks that error codes, positions and scope dumps survive
//              the path from lexer, parser and evaluator to the host.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of error integration tests
// - 2025-02-14 v0.2.0: Interpreter error taxonomy

package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/quill"
	"github.com/msto63/quill/foundation/quill/environment"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		code     qerror.Code
		line     int
		column   int
		message  string
		exitCode int
	}{
		{"unknown character", "x = 1;\ny = $", qerror.CodeLexical, 2, 5, "Cannot handle char", 65},
		{"unterminated call", "print(1, 2", qerror.CodeParse, 0, 0, "", 65},
		{"type mismatch", "1 + \"a\"", qerror.CodeEvaluation, 0, 0, "Cannot add operands", 70},
		{"undefined variable", "a = 1;\nb", qerror.CodeEvaluation, 2, 1, "Undefined variable 'b'", 70},
		{"non-boolean condition", "if 1 then 2", qerror.CodeEvaluation, 0, 0, "Condition must evaluate to boolean", 70},
		{"calling a number", "f = 3; f(1)", qerror.CodeEvaluation, 0, 0, "Cannot call non-function", 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newEngine(t, quill.Options{})
			_, err := engine.Execute(context.Background(), tt.source)
			if err == nil {
				t.Fatal("Execute() succeeded, want error")
			}

			if got := qerror.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
			if got := qerror.GetCode(err).ExitCode(); got != tt.exitCode {
				t.Errorf("exit code = %d, want %d", got, tt.exitCode)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error = %q, want it to mention %q", err, tt.message)
			}

			var qErr *qerror.Error
			if !errors.As(err, &qErr) {
				t.Fatalf("error %T is not a Quill error", err)
			}
			line, column, ok := qErr.Position()
			if !ok {
				t.Errorf("error carries no position: %v", err)
			}
			if tt.line > 0 && (line != tt.line || column != tt.column) {
				t.Errorf("position = %d:%d, want %d:%d", line, column, tt.line, tt.column)
			}
		})
	}
}

func TestEvaluationErrorsCarryScopes(t *testing.T) {
	engine, _ := newEngine(t, quill.Options{})
	_, err := engine.Execute(context.Background(), `outer = 1; f = fn(p) { inner = 2; missing }; f(3)`)
	if err == nil {
		t.Fatal("Execute() succeeded, want error")
	}

	var qErr *qerror.Error
	if !errors.As(err, &qErr) {
		t.Fatalf("error %T is not a Quill error", err)
	}
	v, ok := qErr.Detail(environment.DetailScopes)
	if !ok {
		t.Fatal("scope dump missing")
	}
	dump := strings.Join(v.([]string), "\n")
	for _, want := range []string{"inner = 2", "p = 3", "outer = 1"} {
		if !strings.Contains(dump, want) {
			t.Errorf("scope dump missing %q:\n%s", want, dump)
		}
	}
}

func TestFailedRunKeepsEarlierBindings(t *testing.T) {
	engine, _ := newEngine(t, quill.Options{})
	ctx := context.Background()

	if _, err := engine.Execute(ctx, "kept = 1; boom"); err == nil {
		t.Fatal("Execute() succeeded, want error")
	}
	result, err := engine.Execute(ctx, "kept")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.String() != "1" {
		t.Errorf("kept = %s, want 1", result)
	}
}

func TestRunawayPrograms(t *testing.T) {
	t.Run("call depth", func(t *testing.T) {
		engine, _ := newEngine(t, quill.Options{MaxCallDepth: 50})
		_, err := engine.Execute(context.Background(), "loop = fn(n) loop(n + 1); loop(0)")
		if !qerror.HasCode(err, qerror.CodeCallDepthExceeded) {
			t.Errorf("error = %v, want call depth exceeded", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		engine, _ := newEngine(t, quill.Options{Timeout: 20 * time.Millisecond})
		_, err := engine.Execute(context.Background(),
			"fib = fn(n) if n < 2 then n else fib(n - 1) + fib(n - 2); fib(40)")
		if !qerror.HasCode(err, qerror.CodeCanceled) {
			t.Errorf("error = %v, want canceled", err)
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want it to wrap DeadlineExceeded", err)
		}
	})
}

func TestPreludeErrors(t *testing.T) {
	_, err := quill.New(quill.Options{
		Logger:  qlog.Discard(),
		Prelude: []string{"ok = 1;", "broken = ;"},
	})
	if !qerror.HasCode(err, qerror.CodeParse) {
		t.Fatalf("New() error = %v, want parse error", err)
	}
	if !strings.Contains(err.Error(), "prelude 2 failed") {
		t.Errorf("error = %q, want it to name the prelude", err)
	}
}
