// File: operators.go
// Title: Quill Binary Operators
// Description: Operand evaluation and the arithmetic, string, comparison
//              and logical operator table used by the evaluator.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-04
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-04 v0.1.0: Initial operator table
// - 2025-02-10 v0.1.1: Short-circuit logic, != operator, repeat limits

package evaluator

import (
	"math"
	"strings"

	qerror "github.com/msto63/quill/foundation/core/error"
	qast "github.com/msto63/quill/foundation/quill/ast"
	"github.com/msto63/quill/foundation/quill/environment"
)

// MaxRepeatLength caps the byte length of a repeated string
const MaxRepeatLength = 64 << 20

var operationNames = map[string]string{
	"+":  "add",
	"-":  "subtract",
	"*":  "multiply",
	"/":  "divide",
	"%":  "take remainder of",
	"<":  "compare",
	">":  "compare",
	"<=": "compare",
	">=": "compare",
	"||": "OR",
	"&&": "AND",
}

func (x *execution) evalBinary(n *qast.Binary, scope *environment.Environment) (qast.Node, error) {
	left, err := x.operand(n, n.Left, scope, "left")
	if err != nil {
		return nil, err
	}

	if n.Operator == "||" || n.Operator == "&&" {
		return x.evalLogical(n, left, scope)
	}

	right, err := x.operand(n, n.Right, scope, "right")
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "==":
		return &qast.Boolean{Value: qast.Equal(left, right), Pos: n.Pos}, nil
	case "!=":
		return &qast.Boolean{Value: !qast.Equal(left, right), Pos: n.Pos}, nil
	case "+":
		if l, r, ok := numbers(left, right); ok {
			return &qast.Number{Value: l + r, Pos: n.Pos}, nil
		}
		if l, r, ok := strs(left, right); ok {
			return &qast.String{Value: l + r, Pos: n.Pos}, nil
		}
	case "*":
		if l, r, ok := numbers(left, right); ok {
			return &qast.Number{Value: l * r, Pos: n.Pos}, nil
		}
		if s, ok := left.(*qast.String); ok {
			if count, ok := right.(*qast.Number); ok {
				return x.repeat(n, s.Value, count.Value, scope)
			}
		}
	case "-", "/", "%", "<", ">", "<=", ">=":
		if l, r, ok := numbers(left, right); ok {
			return arithmetic(n, l, r), nil
		}
	default:
		return nil, x.errorf(n, scope, qerror.CodeInternal, "Unknown operator '%s'", n.Operator)
	}

	return nil, x.typeError(n, left, right, scope)
}

func (x *execution) evalLogical(n *qast.Binary, left qast.Node, scope *environment.Environment) (qast.Node, error) {
	l, ok := left.(*qast.Boolean)
	if !ok {
		return nil, x.errorf(n, scope, qerror.CodeEvaluation,
			"Cannot %s operands: %s %s ...", operationNames[n.Operator], qast.Repr(left), n.Operator)
	}
	if (n.Operator == "||") == l.Value {
		return &qast.Boolean{Value: l.Value, Pos: n.Pos}, nil
	}

	right, err := x.operand(n, n.Right, scope, "right")
	if err != nil {
		return nil, err
	}
	r, ok := right.(*qast.Boolean)
	if !ok {
		return nil, x.typeError(n, left, right, scope)
	}
	return &qast.Boolean{Value: r.Value, Pos: n.Pos}, nil
}

// operand evaluates one side of n in a transient child scope
func (x *execution) operand(n *qast.Binary, side qast.Node, scope *environment.Environment, which string) (qast.Node, error) {
	value, err := x.eval(side, environment.New(scope))
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, x.errorf(n, scope, qerror.CodeEvaluation,
			"Unable to evaluate %s operand of '%s': %s", which, n.Operator, side)
	}
	return value, nil
}

func (x *execution) repeat(n *qast.Binary, s string, count float64, scope *environment.Environment) (qast.Node, error) {
	if math.IsNaN(count) || count < 0 {
		return nil, x.errorf(n, scope, qerror.CodeEvaluation,
			"Cannot repeat string %s times", qast.FormatNumber(count))
	}
	times := math.Floor(count)
	if len(s) > 0 && times > float64(MaxRepeatLength/len(s)) {
		return nil, x.errorf(n, scope, qerror.CodeEvaluation,
			"Repeated string would exceed %d bytes", MaxRepeatLength)
	}
	if len(s) == 0 {
		return &qast.String{Value: "", Pos: n.Pos}, nil
	}
	return &qast.String{Value: strings.Repeat(s, int(times)), Pos: n.Pos}, nil
}

func (x *execution) typeError(n *qast.Binary, left, right qast.Node, scope *environment.Environment) error {
	return x.errorf(n, scope, qerror.CodeEvaluation,
		"Cannot %s operands: %s %s %s", operationNames[n.Operator], qast.Repr(left), n.Operator, qast.Repr(right))
}

// arithmetic applies the numeric-only operators
func arithmetic(n *qast.Binary, l, r float64) qast.Node {
	switch n.Operator {
	case "-":
		return &qast.Number{Value: l - r, Pos: n.Pos}
	case "/":
		return &qast.Number{Value: l / r, Pos: n.Pos}
	case "%":
		return &qast.Number{Value: math.Mod(l, r), Pos: n.Pos}
	case "<":
		return &qast.Boolean{Value: l < r, Pos: n.Pos}
	case ">":
		return &qast.Boolean{Value: l > r, Pos: n.Pos}
	case "<=":
		return &qast.Boolean{Value: l <= r, Pos: n.Pos}
	default:
		return &qast.Boolean{Value: l >= r, Pos: n.Pos}
	}
}

func numbers(left, right qast.Node) (float64, float64, bool) {
	l, ok := left.(*qast.Number)
	if !ok {
		return 0, 0, false
	}
	r, ok := right.(*qast.Number)
	if !ok {
		return 0, 0, false
	}
	return l.Value, r.Value, true
}

func strs(left, right qast.Node) (string, string, bool) {
	l, ok := left.(*qast.String)
	if !ok {
		return "", "", false
	}
	r, ok := right.(*qast.String)
	if !ok {
		return "", "", false
	}
	return l.Value, r.Value, true
}
