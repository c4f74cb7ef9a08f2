// File: equal.go
// Title: Structural Equality
// Description: Structural comparison of AST nodes and values. Positions
//              are ignored, native functions are never equal to anything
//              and NaN is not equal to itself.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-10

package ast

// Equal reports whether a and b are structurally equal
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Function:
		y, ok := b.(*Function)
		if !ok || x.Native != nil || y.Native != nil {
			return false
		}
		return equalStrings(x.Parameters, y.Parameters) && Equal(x.Body, y.Body)
	case *Call:
		y, ok := b.(*Call)
		return ok && Equal(x.Function, y.Function) && equalNodes(x.Arguments, y.Arguments)
	case *If:
		y, ok := b.(*If)
		return ok && Equal(x.Condition, y.Condition) && Equal(x.Then, y.Then) && Equal(x.Otherwise, y.Otherwise)
	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.Operator == y.Operator && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Operator == y.Operator && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Program:
		y, ok := b.(*Program)
		return ok && equalNodes(x.Body, y.Body)
	case *Block:
		y, ok := b.(*Block)
		return ok && Equal(x.Body, y.Body)
	}
	return false
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
