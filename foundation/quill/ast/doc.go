// Package ast defines the Quill syntax tree.
//
// The node set is closed: Number, String, Boolean, Variable, Function,
// Call, If, Assign, Binary, Program and Block. Number, String, Boolean
// and Function double as runtime values; the evaluator reduces every
// other node away.
//
// Print renders a tree as source that parses back into an Equal tree.
// Display renders values the way the print builtin shows them.
package ast
