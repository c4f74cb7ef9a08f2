// File: input.go
// Title: Quill Input Stream
// Description: Rune cursor over source text that tracks line and column
//              for diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-03

package parser

import (
	"fmt"

	qerror "github.com/msto63/quill/foundation/core/error"
)

// InputStream is a rune cursor over source text
type InputStream struct {
	input  []rune
	pos    int
	line   int // Line of the next rune (1-based)
	column int // Runes consumed on the current line
}

// NewInputStream creates a stream positioned before the first rune
func NewInputStream(input string) *InputStream {
	return &InputStream{
		input: []rune(input),
		line:  1,
	}
}

// Next consumes and returns one rune, or 0 at end of input
func (s *InputStream) Next() rune {
	if s.pos >= len(s.input) {
		return 0
	}
	r := s.input[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return r
}

// Peek returns the next rune without consuming it, or 0 at end of input
func (s *InputStream) Peek() rune {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

// EOF reports whether the input is exhausted
func (s *InputStream) EOF() bool {
	return s.pos >= len(s.input)
}

// Line returns the line of the next rune
func (s *InputStream) Line() int {
	return s.line
}

// Column returns the 1-based column of the next rune
func (s *InputStream) Column() int {
	return s.column + 1
}

// Errorf builds a lexical error at the current position
func (s *InputStream) Errorf(format string, args ...interface{}) *qerror.Error {
	return qerror.New(fmt.Sprintf(format, args...)).
		WithCode(qerror.CodeLexical).
		WithPosition(s.Line(), s.Column())
}
