// File: display.go
// Title: Value Display
// Description: Formats evaluated values for output, as used by the print
//              builtins, the REPL and the CLI.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-05
// Modified: 2025-02-05

package ast

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a float without exponent and without a trailing ".0"
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Display renders a value the way print shows it. Strings appear without
// quotes; syntax nodes fall back to their source form.
func Display(n Node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *Number:
		return FormatNumber(v.Value)
	case *String:
		return v.Value
	case *Boolean:
		return strconv.FormatBool(v.Value)
	case *Function:
		if v.Native != nil {
			if v.Name != "" {
				return "<native " + v.Name + ">"
			}
			return "<native>"
		}
		return "<fn(" + strings.Join(v.Parameters, ", ") + ")>"
	default:
		return n.String()
	}
}

// Repr is Display with strings quoted, so "1" and 1 stay distinguishable
func Repr(n Node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *String:
		return Print(v)
	default:
		return Display(n)
	}
}
