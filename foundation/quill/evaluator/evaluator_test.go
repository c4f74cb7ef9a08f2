// File: evaluator_test.go
// Title: Quill Evaluator Tests
// Description: Tests evaluation of literals, operators, scoping, calls,
//              natives, error reporting, call depth and cancellation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-10

package evaluator

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	qast "github.com/msto63/quill/foundation/quill/ast"
	"github.com/msto63/quill/foundation/quill/environment"
	qparser "github.com/msto63/quill/foundation/quill/parser"
)

func newEvaluator(t *testing.T, maxDepth int) *Evaluator {
	t.Helper()
	ev, err := New(Options{Logger: qlog.Discard(), MaxCallDepth: maxDepth})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ev
}

func parse(t *testing.T, src string) *qast.Program {
	t.Helper()
	p, err := qparser.New(qparser.Options{Logger: qlog.Discard()})
	if err != nil {
		t.Fatalf("parser.New() error = %v", err)
	}
	prog, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return prog
}

func run(t *testing.T, src string) (qast.Node, error) {
	t.Helper()
	return newEvaluator(t, 0).Run(context.Background(), parse(t, src), environment.New(nil))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want qast.Node
	}{
		{"precedence", "2 + 3 * 4", &qast.Number{Value: 14}},
		{"fibonacci", "fib = fn(n) if n < 2 then n else fib(n-1)+fib(n-2); fib(10)", &qast.Number{Value: 55}},
		{"string repeat", `"ab" * 3`, &qast.String{Value: "ababab"}},
		{"repeat floors count", `"ab" * 2.7`, &qast.String{Value: "abab"}},
		{"repeat zero", `"ab" * 0`, &qast.String{Value: ""}},
		{"string concat", `"a" + "b"`, &qast.String{Value: "ab"}},
		{"remainder", "7 % 3", &qast.Number{Value: 1}},
		{"left associative minus", "10 - 3 - 2", &qast.Number{Value: 5}},
		{"if without else", "if false then 1", &qast.Boolean{Value: false}},
		{"if with else", "if 1 > 2 then 1 else 2", &qast.Number{Value: 2}},
		{"block shadows", "x = 1; { x = 2 }; x", &qast.Number{Value: 1}},
		{"block value", "{ 1; 2 }", nil},
		{"nested multi statement block", "{ { 1; 2 } }", nil},
		{"function with multi statement body", "f = fn() { 1; 5 }; f()", nil},
		{"if branch with multi statement block", "if true then { 1; 2 } else 3", nil},
		{"single element block", "{ 3 }", &qast.Number{Value: 3}},
		{"empty block", "{}", &qast.Boolean{Value: false}},
		{"missing arguments bind false", "f = fn(a, b) b; f(1)", &qast.Boolean{Value: false}},
		{"extra arguments ignored", "f = fn(a) a; f(1, 2)", &qast.Number{Value: 1}},
		{"extra arguments not evaluated", "f = fn(a) a; f(1, nowhere)", &qast.Number{Value: 1}},
		{"valueless argument binds false", "f = fn(a) a; f(y = 1)", &qast.Boolean{Value: false}},
		{"caller scoped resolution", "f = fn() y; g = fn(y) f(); g(5)", &qast.Number{Value: 5}},
		{"parameters shadow globals", "n = 1; f = fn(n) n * 10; f(2) + n", &qast.Number{Value: 21}},
		{"assignment has no value", "x = 1", nil},
		{"equal across kinds", `1 == "1"`, &qast.Boolean{Value: false}},
		{"equal strings", `"a" == "a"`, &qast.Boolean{Value: true}},
		{"not equal", "1 != 2", &qast.Boolean{Value: true}},
		{"not equal same", `"a" != "a"`, &qast.Boolean{Value: false}},
		{"comparisons", "1 < 2 && 2 <= 2 && 3 > 2 && 3 >= 4", &qast.Boolean{Value: false}},
		{"or short circuits", "true || nowhere", &qast.Boolean{Value: true}},
		{"and short circuits", "false && nowhere", &qast.Boolean{Value: false}},
		{"or evaluates right", "false || true", &qast.Boolean{Value: true}},
		{"and evaluates right", "true && false", &qast.Boolean{Value: false}},
		{"function is a value", "f = fn(x) x; f == f", &qast.Boolean{Value: true}},
		{"reassignment", "x = 1; x = x + 1; x", &qast.Number{Value: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src)
			if err != nil {
				t.Fatalf("Run(%q) error = %v", tt.src, err)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("Run(%q) = %v, want no value", tt.src, qast.Repr(got))
				}
				return
			}
			if !qast.Equal(got, tt.want) {
				t.Errorf("Run(%q) = %v, want %v", tt.src, qast.Repr(got), qast.Repr(tt.want))
			}
		})
	}
}

func TestRunDivisionByZero(t *testing.T) {
	got, err := run(t, "1 / 0")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	n, ok := got.(*qast.Number)
	if !ok || !math.IsInf(n.Value, 1) {
		t.Errorf("1 / 0 = %v, want +Inf", qast.Repr(got))
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    qerror.Code
		message string
	}{
		{"add type error", `1 + "a"`, qerror.CodeEvaluation, `Cannot add operands: 1 + "a"`},
		{"subtract strings", `"a" - "b"`, qerror.CodeEvaluation, `Cannot subtract operands`},
		{"compare strings", `"a" < "b"`, qerror.CodeEvaluation, `Cannot compare operands`},
		{"undefined variable", "y", qerror.CodeEvaluation, "Undefined variable 'y'"},
		{"condition not boolean", "if 1 then 2", qerror.CodeEvaluation, "Condition must evaluate to boolean"},
		{"assign to literal", "1 = 2", qerror.CodeEvaluation, "Can only assign to a variable"},
		{"call non-function", "x = 1; x(2)", qerror.CodeEvaluation, "Cannot call non-function 'x'"},
		{"call literal", "(fn(x) x)(1)", qerror.CodeEvaluation, "Cannot call non-function"},
		{"call undefined", "g(1)", qerror.CodeEvaluation, "Undefined variable 'g'"},
		{"negative repeat", `"a" * (0 - 1)`, qerror.CodeEvaluation, "Cannot repeat string -1 times"},
		{"huge repeat", `"a" * 1000000000000`, qerror.CodeEvaluation, "Repeated string would exceed"},
		{"or on number", "1 || true", qerror.CodeEvaluation, "Cannot OR operands"},
		{"and on number", "true && 1", qerror.CodeEvaluation, "Cannot AND operands: true && 1"},
		{"valueless operand", "f = fn() { a = 1; b = 2 }; 1 + f()", qerror.CodeEvaluation, "Unable to evaluate right operand"},
		{"valueless assignment", "f = fn() { a = 1; a }; x = f()", qerror.CodeEvaluation, "Assignment to 'x' produced no value"},
		{"chained assignment", "a = b = 3", qerror.CodeEvaluation, "Assignment to 'a' produced no value"},
		{"block bindings do not leak", "{ z = 1 }; z", qerror.CodeEvaluation, "Undefined variable 'z'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src)
			if err == nil {
				t.Fatalf("Run(%q) expected error", tt.src)
			}
			if !qerror.HasCode(err, tt.code) {
				t.Errorf("Run(%q) code = %v, want %v", tt.src, qerror.GetCode(err), tt.code)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Run(%q) error = %q, want it to contain %q", tt.src, err.Error(), tt.message)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	tests := []struct {
		src       string
		line, col int
	}{
		{`1 + "a"`, 1, 3},
		{"x = 1;\n  y", 2, 3},
		{"f = fn(n) n;\nif f then 1", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := run(t, tt.src)
			var qErr *qerror.Error
			if !errors.As(err, &qErr) {
				t.Fatalf("Run(%q) error = %v, want *qerror.Error", tt.src, err)
			}
			line, col, ok := qErr.Position()
			if !ok || line != tt.line || col != tt.col {
				t.Errorf("Position() = %d:%d (%v), want %d:%d", line, col, ok, tt.line, tt.col)
			}
		})
	}
}

func TestErrorCarriesScopeDump(t *testing.T) {
	_, err := run(t, "f = fn(n) n + y; f(3)")

	var qErr *qerror.Error
	if !errors.As(err, &qErr) {
		t.Fatalf("error = %v, want *qerror.Error", err)
	}
	detail, ok := qErr.Detail(environment.DetailScopes)
	if !ok {
		t.Fatal("error has no scope dump")
	}
	dump := strings.Join(detail.([]string), "\n")
	if !strings.Contains(dump, "n = 3") {
		t.Errorf("scope dump should contain the parameter binding:\n%s", dump)
	}
	if !strings.Contains(dump, "f = ") {
		t.Errorf("scope dump should contain the root binding:\n%s", dump)
	}
}

func TestNativeCalls(t *testing.T) {
	var seen []string
	root := environment.New(nil)
	root.Def("collect", &qast.Function{
		Name: "collect",
		Native: func(args []qast.Node) (qast.Node, error) {
			for _, arg := range args {
				seen = append(seen, qast.Display(arg))
			}
			return &qast.Number{Value: float64(len(args))}, nil
		},
	})
	root.Def("fail", &qast.Function{
		Name: "fail",
		Native: func(args []qast.Node) (qast.Node, error) {
			return nil, errors.New("boom")
		},
	})

	ev := newEvaluator(t, 0)
	got, err := ev.Run(context.Background(), parse(t, `collect(1, "a", x = 2)`), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !qast.Equal(got, &qast.Number{Value: 2}) {
		t.Errorf("collect() = %v, want 2", qast.Repr(got))
	}
	if strings.Join(seen, ",") != "1,a" {
		t.Errorf("native saw %v, want [1 a]", seen)
	}
	if !root.Has("x") {
		t.Error("native arguments should be evaluated in the calling scope")
	}

	_, err = ev.Run(context.Background(), parse(t, "fail()"), root)
	if !qerror.HasCode(err, qerror.CodeEvaluation) {
		t.Errorf("native failure code = %v, want %v", qerror.GetCode(err), qerror.CodeEvaluation)
	}
	if err == nil || !strings.Contains(err.Error(), "native function 'fail' failed: boom") {
		t.Errorf("native failure error = %v", err)
	}
}

func TestMaxCallDepth(t *testing.T) {
	ev := newEvaluator(t, 50)

	_, err := ev.Run(context.Background(), parse(t, "f = fn(n) f(n + 1); f(0)"), environment.New(nil))
	if !qerror.HasCode(err, qerror.CodeCallDepthExceeded) {
		t.Fatalf("error = %v, want %v", err, qerror.CodeCallDepthExceeded)
	}

	got, err := ev.Run(context.Background(),
		parse(t, "count = fn(n) if n == 0 then 0 else count(n - 1); count(40)"), environment.New(nil))
	if err != nil {
		t.Fatalf("recursion within the limit failed: %v", err)
	}
	if !qast.Equal(got, &qast.Number{Value: 0}) {
		t.Errorf("count(40) = %v, want 0", qast.Repr(got))
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEvaluator(t, 0).Run(ctx, parse(t, "f = fn() 1; f()"), environment.New(nil))
	if !qerror.HasCode(err, qerror.CodeCanceled) {
		t.Errorf("error = %v, want %v", err, qerror.CodeCanceled)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("error should unwrap to context.Canceled")
	}
}

func TestEvaluate(t *testing.T) {
	ev := newEvaluator(t, 0)
	scope := environment.New(nil)

	got, err := ev.Evaluate(context.Background(), parse(t, "x = 4; x * 2"), scope)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != nil {
		t.Errorf("Evaluate(program) = %v, want no value", qast.Repr(got))
	}
	if !scope.Has("x") {
		t.Error("program statements should define into the given scope")
	}

	lit := &qast.String{Value: "hi"}
	if got, _ := ev.Evaluate(context.Background(), lit, scope); got != lit {
		t.Error("literals should evaluate to themselves")
	}

	if _, err := ev.Run(context.Background(), nil, scope); !qerror.HasCode(err, qerror.CodeInvalidInput) {
		t.Errorf("Run(nil) error = %v, want %v", err, qerror.CodeInvalidInput)
	}
}

func TestNewOptions(t *testing.T) {
	if _, err := New(Options{MaxCallDepth: -1}); err == nil {
		t.Error("New() should reject a negative call depth")
	}

	ev, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if ev.options.MaxCallDepth != DefaultMaxCallDepth {
		t.Errorf("MaxCallDepth = %d, want %d", ev.options.MaxCallDepth, DefaultMaxCallDepth)
	}
}

func BenchmarkFib(b *testing.B) {
	p, _ := qparser.New(qparser.Options{Logger: qlog.Discard()})
	prog, err := p.Parse("fib = fn(n) if n < 2 then n else fib(n-1)+fib(n-2); fib(15)")
	if err != nil {
		b.Fatal(err)
	}
	ev, _ := New(Options{Logger: qlog.Discard()})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ev.Run(context.Background(), prog, environment.New(nil)); err != nil {
			b.Fatal(err)
		}
	}
}
