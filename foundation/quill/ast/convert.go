// File: convert.go
// Title: AST Map Conversion
// Description: Converts a tree into nested maps and slices so it can be
//              serialized by generic encoders such as YAML.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-07
// Modified: 2025-02-07

package ast

// ToMap converts n into a serializable map. Keys are stable so the output
// can be compared across runs.
func ToMap(n Node) map[string]interface{} {
	return (&mapBuilder{}).build(n)
}

type mapBuilder struct{}

func (b *mapBuilder) build(n Node) map[string]interface{} {
	if n == nil {
		return nil
	}
	m, _ := n.Accept(b).(map[string]interface{})
	return m
}

func (b *mapBuilder) list(nodes []Node) []interface{} {
	out := make([]interface{}, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.build(n))
	}
	return out
}

func node(kind Kind, pos Position) map[string]interface{} {
	m := map[string]interface{}{"kind": kind.String()}
	if pos.IsValid() {
		m["pos"] = pos.String()
	}
	return m
}

func (b *mapBuilder) VisitNumber(n *Number) interface{} {
	m := node(KindNumber, n.Pos)
	m["value"] = n.Value
	return m
}

func (b *mapBuilder) VisitString(n *String) interface{} {
	m := node(KindString, n.Pos)
	m["value"] = n.Value
	return m
}

func (b *mapBuilder) VisitBoolean(n *Boolean) interface{} {
	m := node(KindBoolean, n.Pos)
	m["value"] = n.Value
	return m
}

func (b *mapBuilder) VisitVariable(n *Variable) interface{} {
	m := node(KindVariable, n.Pos)
	m["name"] = n.Name
	return m
}

func (b *mapBuilder) VisitFunction(n *Function) interface{} {
	m := node(KindFunction, n.Pos)
	params := make([]interface{}, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = p
	}
	m["parameters"] = params
	if n.Native != nil {
		m["native"] = n.Name
	} else {
		m["body"] = b.build(n.Body)
	}
	return m
}

func (b *mapBuilder) VisitCall(n *Call) interface{} {
	m := node(KindCall, n.Pos)
	m["function"] = b.build(n.Function)
	m["arguments"] = b.list(n.Arguments)
	return m
}

func (b *mapBuilder) VisitIf(n *If) interface{} {
	m := node(KindIf, n.Pos)
	m["condition"] = b.build(n.Condition)
	m["then"] = b.build(n.Then)
	if n.Otherwise != nil {
		m["else"] = b.build(n.Otherwise)
	}
	return m
}

func (b *mapBuilder) VisitAssign(n *Assign) interface{} {
	m := node(KindAssign, n.Pos)
	m["operator"] = n.Operator
	m["left"] = b.build(n.Left)
	m["right"] = b.build(n.Right)
	return m
}

func (b *mapBuilder) VisitBinary(n *Binary) interface{} {
	m := node(KindBinary, n.Pos)
	m["operator"] = n.Operator
	m["left"] = b.build(n.Left)
	m["right"] = b.build(n.Right)
	return m
}

func (b *mapBuilder) VisitProgram(n *Program) interface{} {
	m := node(KindProgram, n.Pos)
	m["body"] = b.list(n.Body)
	return m
}

func (b *mapBuilder) VisitBlock(n *Block) interface{} {
	m := node(KindBlock, n.Pos)
	m["body"] = b.build(n.Body)
	return m
}
