// File: nodes.go
// Title: Quill AST Node Definitions
// Description: Defines the closed set of AST node types. Literal and
//              function nodes double as the runtime values produced by the
//              evaluator; the remaining nodes are syntax only.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-03 v0.1.0: Initial AST node definitions
// - 2025-02-10 v0.1.1: Block scope node, source positions

package ast

import "fmt"

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns the node rendered as Quill source
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the source position of the node
	Position() Position

	// Kind returns the node variant
	Kind() Kind
}

// Position represents a position in the source code.
// Positions are informational and never take part in equality.
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Kind identifies a node variant
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindVariable
	KindFunction
	KindCall
	KindIf
	KindAssign
	KindBinary
	KindProgram
	KindBlock
)

// String returns string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindCall:
		return "call"
	case KindIf:
		return "if"
	case KindAssign:
		return "assign"
	case KindBinary:
		return "binary"
	case KindProgram:
		return "program"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// NativeFunc is a host callback. It receives the already evaluated
// arguments and returns one value.
type NativeFunc func(args []Node) (Node, error)

// Number is a numeric literal and value
type Number struct {
	Value float64
	Pos   Position
}

// String is a string literal and value
type String struct {
	Value string
	Pos   Position
}

// Boolean is a boolean literal and value
type Boolean struct {
	Value bool
	Pos   Position
}

// Variable is a reference to a binding
type Variable struct {
	Name string
	Pos  Position
}

// Function is a callable value. Native is set only for host functions,
// in which case Body is ignored.
type Function struct {
	Parameters []string
	Body       Node
	Native     NativeFunc

	// Name labels native functions in diagnostics
	Name string
	Pos  Position
}

// Call is an invocation
type Call struct {
	Function  Node
	Arguments []Node
	Pos       Position
}

// If is a conditional; Otherwise is nil when there is no else branch
type If struct {
	Condition Node
	Then      Node
	Otherwise Node
	Pos       Position
}

// Assign binds the value of Right to the variable Left
type Assign struct {
	Operator string
	Left     Node
	Right    Node
	Pos      Position
}

// Binary is an operator application
type Binary struct {
	Operator string
	Left     Node
	Right    Node
	Pos      Position
}

// Program is a sequence of statements
type Program struct {
	Body []Node
	Pos  Position
}

// Block is a braced block. Its body runs in a scope of its own.
type Block struct {
	Body Node
	Pos  Position
}

// IsNative reports whether the function is host supplied
func (f *Function) IsNative() bool {
	return f.Native != nil
}

// IsValue reports whether n is a legal evaluated value
func IsValue(n Node) bool {
	switch n.(type) {
	case *Number, *String, *Boolean, *Function:
		return true
	default:
		return false
	}
}

// Position implementations

func (n *Number) Position() Position   { return n.Pos }
func (n *String) Position() Position   { return n.Pos }
func (n *Boolean) Position() Position  { return n.Pos }
func (n *Variable) Position() Position { return n.Pos }
func (n *Function) Position() Position { return n.Pos }
func (n *Call) Position() Position     { return n.Pos }
func (n *If) Position() Position       { return n.Pos }
func (n *Assign) Position() Position   { return n.Pos }
func (n *Binary) Position() Position   { return n.Pos }
func (n *Program) Position() Position  { return n.Pos }
func (n *Block) Position() Position    { return n.Pos }

// Kind implementations

func (n *Number) Kind() Kind   { return KindNumber }
func (n *String) Kind() Kind   { return KindString }
func (n *Boolean) Kind() Kind  { return KindBoolean }
func (n *Variable) Kind() Kind { return KindVariable }
func (n *Function) Kind() Kind { return KindFunction }
func (n *Call) Kind() Kind     { return KindCall }
func (n *If) Kind() Kind       { return KindIf }
func (n *Assign) Kind() Kind   { return KindAssign }
func (n *Binary) Kind() Kind   { return KindBinary }
func (n *Program) Kind() Kind  { return KindProgram }
func (n *Block) Kind() Kind    { return KindBlock }

// Accept implementations

func (n *Number) Accept(v Visitor) interface{}   { return v.VisitNumber(n) }
func (n *String) Accept(v Visitor) interface{}   { return v.VisitString(n) }
func (n *Boolean) Accept(v Visitor) interface{}  { return v.VisitBoolean(n) }
func (n *Variable) Accept(v Visitor) interface{} { return v.VisitVariable(n) }
func (n *Function) Accept(v Visitor) interface{} { return v.VisitFunction(n) }
func (n *Call) Accept(v Visitor) interface{}     { return v.VisitCall(n) }
func (n *If) Accept(v Visitor) interface{}       { return v.VisitIf(n) }
func (n *Assign) Accept(v Visitor) interface{}   { return v.VisitAssign(n) }
func (n *Binary) Accept(v Visitor) interface{}   { return v.VisitBinary(n) }
func (n *Program) Accept(v Visitor) interface{}  { return v.VisitProgram(n) }
func (n *Block) Accept(v Visitor) interface{}    { return v.VisitBlock(n) }

// String implementations render source through the printer

func (n *Number) String() string   { return Print(n) }
func (n *String) String() string   { return Print(n) }
func (n *Boolean) String() string  { return Print(n) }
func (n *Variable) String() string { return Print(n) }
func (n *Function) String() string { return Print(n) }
func (n *Call) String() string     { return Print(n) }
func (n *If) String() string       { return Print(n) }
func (n *Assign) String() string   { return Print(n) }
func (n *Binary) String() string   { return Print(n) }
func (n *Program) String() string  { return Print(n) }
func (n *Block) String() string    { return Print(n) }
