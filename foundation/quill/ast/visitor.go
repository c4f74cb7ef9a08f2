// File: visitor.go
// Title: Quill AST Visitor Pattern Implementation
// Description: Implements the visitor pattern for traversing AST nodes,
//              a generic pre-order walk, and the source printer whose output
//              parses back into a structurally equal tree.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-03 v0.1.0: Initial visitor pattern implementation
// - 2025-02-10 v0.1.1: Round-trip source printer

package ast

import (
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	// Values and leaves
	VisitNumber(n *Number) interface{}
	VisitString(n *String) interface{}
	VisitBoolean(n *Boolean) interface{}
	VisitVariable(n *Variable) interface{}
	VisitFunction(n *Function) interface{}

	// Syntax
	VisitCall(n *Call) interface{}
	VisitIf(n *If) interface{}
	VisitAssign(n *Assign) interface{}
	VisitBinary(n *Binary) interface{}
	VisitProgram(n *Program) interface{}
	VisitBlock(n *Block) interface{}
}

// Children returns the direct child nodes of n in source order
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Function:
		if n.Body != nil && n.Native == nil {
			return []Node{n.Body}
		}
	case *Call:
		return append([]Node{n.Function}, n.Arguments...)
	case *If:
		if n.Otherwise != nil {
			return []Node{n.Condition, n.Then, n.Otherwise}
		}
		return []Node{n.Condition, n.Then}
	case *Assign:
		return []Node{n.Left, n.Right}
	case *Binary:
		return []Node{n.Left, n.Right}
	case *Program:
		return n.Body
	case *Block:
		return []Node{n.Body}
	}
	return nil
}

// Inspect walks the tree in pre-order. Children are skipped when fn
// returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, fn)
	}
}

// Printer renders nodes as Quill source. Binary, assignment, conditional
// and function nodes are always parenthesized, so the output never relies
// on precedence or on where a trailing else binds.
type Printer struct {
	sb strings.Builder
}

// Print renders a node as source
func Print(n Node) string {
	p := &Printer{}
	p.print(n)
	return p.sb.String()
}

func (p *Printer) print(n Node) {
	if n == nil {
		return
	}
	n.Accept(p)
}

func (p *Printer) VisitNumber(n *Number) interface{} {
	p.sb.WriteString(FormatNumber(n.Value))
	return nil
}

func (p *Printer) VisitString(n *String) interface{} {
	p.sb.WriteByte('"')
	for _, r := range n.Value {
		if r == '"' || r == '\\' {
			p.sb.WriteByte('\\')
		}
		p.sb.WriteRune(r)
	}
	p.sb.WriteByte('"')
	return nil
}

func (p *Printer) VisitBoolean(n *Boolean) interface{} {
	if n.Value {
		p.sb.WriteString("true")
	} else {
		p.sb.WriteString("false")
	}
	return nil
}

func (p *Printer) VisitVariable(n *Variable) interface{} {
	p.sb.WriteString(n.Name)
	return nil
}

func (p *Printer) VisitFunction(n *Function) interface{} {
	p.sb.WriteString("(fn(")
	p.sb.WriteString(strings.Join(n.Parameters, ", "))
	p.sb.WriteString(") ")
	if n.Native != nil {
		p.sb.WriteString("<native")
		if n.Name != "" {
			p.sb.WriteString(" " + n.Name)
		}
		p.sb.WriteString(">")
	} else {
		p.print(n.Body)
	}
	p.sb.WriteByte(')')
	return nil
}

func (p *Printer) VisitCall(n *Call) interface{} {
	// f(1)(2) only chains at the start of an expression
	if _, chained := n.Function.(*Call); chained {
		p.sb.WriteByte('(')
		p.print(n.Function)
		p.sb.WriteByte(')')
	} else {
		p.print(n.Function)
	}
	p.sb.WriteByte('(')
	for i, arg := range n.Arguments {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.print(arg)
	}
	p.sb.WriteByte(')')
	return nil
}

func (p *Printer) VisitIf(n *If) interface{} {
	p.sb.WriteString("(if ")
	p.print(n.Condition)
	p.sb.WriteString(" then ")
	p.print(n.Then)
	if n.Otherwise != nil {
		p.sb.WriteString(" else ")
		p.print(n.Otherwise)
	}
	p.sb.WriteByte(')')
	return nil
}

func (p *Printer) VisitAssign(n *Assign) interface{} {
	p.sb.WriteByte('(')
	p.print(n.Left)
	p.sb.WriteString(" " + n.Operator + " ")
	p.print(n.Right)
	p.sb.WriteByte(')')
	return nil
}

func (p *Printer) VisitBinary(n *Binary) interface{} {
	p.sb.WriteByte('(')
	p.print(n.Left)
	p.sb.WriteString(" " + n.Operator + " ")
	p.print(n.Right)
	p.sb.WriteByte(')')
	return nil
}

func (p *Printer) VisitProgram(n *Program) interface{} {
	for i, stmt := range n.Body {
		if i > 0 {
			p.sb.WriteString(";\n")
		}
		p.print(stmt)
	}
	return nil
}

func (p *Printer) VisitBlock(n *Block) interface{} {
	p.sb.WriteByte('{')
	if prog, ok := n.Body.(*Program); ok {
		for i, stmt := range prog.Body {
			if i > 0 {
				p.sb.WriteString("; ")
			}
			p.print(stmt)
		}
	} else {
		p.print(n.Body)
	}
	p.sb.WriteByte('}')
	return nil
}
