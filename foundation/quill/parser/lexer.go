// File: lexer.go
// Title: Quill Lexical Analyzer (Tokenizer)
// Description: Converts the rune stream into tokens with one token of
//              lookahead. Whitespace and # comments are skipped; every
//              token records the position where it starts.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-03 v0.1.0: Initial lexer implementation
// - 2025-02-10 v0.1.1: Sticky errors, Tokenize helper

package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	qerror "github.com/msto63/quill/foundation/core/error"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenPunctuation TokenType = iota // , ; ( ) { } [ ]
	TokenNumber                       // 2, 3.25
	TokenString                       // "text"
	TokenIdentifier                   // fib, print_range
	TokenOperator                     // + == && ...
	TokenKeyword                      // if then else fn true false
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenPunctuation:
		return "Punctuation"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	case TokenIdentifier:
		return "Identifier"
	case TokenOperator:
		return "Operator"
	case TokenKeyword:
		return "Keyword"
	default:
		return "Unknown"
	}
}

// Keyword identifies a reserved word
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordIf
	KeywordThen
	KeywordElse
	KeywordFn
	KeywordTrue
	KeywordFalse
)

var keywords = map[string]Keyword{
	"if":    KeywordIf,
	"then":  KeywordThen,
	"else":  KeywordElse,
	"fn":    KeywordFn,
	"true":  KeywordTrue,
	"false": KeywordFalse,
}

// String returns the keyword as written in source
func (k Keyword) String() string {
	for text, kw := range keywords {
		if kw == k {
			return text
		}
	}
	return "none"
}

// Token represents a lexical token with position information
type Token struct {
	Type    TokenType
	Text    string  // Source text; string contents for TokenString
	Number  float64 // Value of a TokenNumber
	Keyword Keyword // Value of a TokenKeyword
	Line    int     // Line number (1-based)
	Column  int     // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenString:
		return fmt.Sprintf("String(%q)", t.Text)
	case TokenKeyword:
		return fmt.Sprintf("Keyword(%s)", t.Keyword)
	default:
		return fmt.Sprintf("%s(%s)", t.Type, t.Text)
	}
}

// Is reports whether the token has the given type and text
func (t *Token) Is(tt TokenType, text string) bool {
	return t != nil && t.Type == tt && t.Text == text
}

// TokenStream produces tokens from an InputStream with one token of
// lookahead. After a lexical error the stream reports end of input and
// Err returns the error.
type TokenStream struct {
	input   *InputStream
	current *Token
	err     error
}

// NewTokenStream creates a token stream over input
func NewTokenStream(input *InputStream) *TokenStream {
	return &TokenStream{input: input}
}

// Peek returns the next token without consuming it, or nil at end
func (ts *TokenStream) Peek() *Token {
	if ts.current == nil {
		ts.current = ts.readNext()
	}
	return ts.current
}

// Next consumes and returns the next token, or nil at end
func (ts *TokenStream) Next() *Token {
	tok := ts.current
	ts.current = nil
	if tok != nil {
		return tok
	}
	return ts.readNext()
}

// EOF reports whether no tokens remain
func (ts *TokenStream) EOF() bool {
	return ts.Peek() == nil
}

// Err returns the lexical error that stopped the stream, if any
func (ts *TokenStream) Err() error {
	return ts.err
}

// Line and Column report where the stream currently is
func (ts *TokenStream) Line() int   { return ts.input.Line() }
func (ts *TokenStream) Column() int { return ts.input.Column() }

func (ts *TokenStream) readNext() *Token {
	if ts.err != nil {
		return nil
	}

	for {
		ts.readWhile(unicode.IsSpace)
		if ts.input.EOF() {
			return nil
		}
		if ts.input.Peek() != '#' {
			break
		}
		ts.readWhile(func(r rune) bool { return r != '\n' })
	}

	line, column := ts.input.Line(), ts.input.Column()
	tok := &Token{Line: line, Column: column}

	r := ts.input.Peek()
	switch {
	case r == '"':
		tok.Type = TokenString
		tok.Text = ts.readEscaped('"')
	case isDigit(r):
		text := ts.readNumber()
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			ts.err = qerror.Newf("malformed number %q", text).
				WithCode(qerror.CodeInternal).
				WithPosition(line, column)
			return nil
		}
		tok.Type = TokenNumber
		tok.Text = text
		tok.Number = value
	case isIdentifierStart(r):
		text := ts.readWhile(isIdentifier)
		tok.Text = text
		if kw, ok := keywords[text]; ok {
			tok.Type = TokenKeyword
			tok.Keyword = kw
		} else {
			tok.Type = TokenIdentifier
		}
	case isPunctuation(r):
		tok.Type = TokenPunctuation
		tok.Text = string(ts.input.Next())
	case isOperator(r):
		tok.Type = TokenOperator
		tok.Text = ts.readWhile(isOperator)
	default:
		ts.err = ts.input.Errorf("Cannot handle char: %s", strconv.QuoteRune(r))
		return nil
	}

	return tok
}

func (ts *TokenStream) readWhile(pred func(rune) bool) string {
	var sb strings.Builder
	for !ts.input.EOF() && pred(ts.input.Peek()) {
		sb.WriteRune(ts.input.Next())
	}
	return sb.String()
}

// readNumber reads digits with at most one dot
func (ts *TokenStream) readNumber() string {
	hasDot := false
	return ts.readWhile(func(r rune) bool {
		if r == '.' {
			if hasDot {
				return false
			}
			hasDot = true
			return true
		}
		return isDigit(r)
	})
}

// readEscaped reads up to an unescaped end rune. A backslash copies the
// following rune unchanged; unterminated input ends the string silently.
func (ts *TokenStream) readEscaped(end rune) string {
	var sb strings.Builder
	escaped := false
	ts.input.Next()
	for !ts.input.EOF() {
		r := ts.input.Next()
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == end:
			return sb.String()
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Tokenize lexes the whole input
func Tokenize(input string) ([]Token, error) {
	ts := NewTokenStream(NewInputStream(input))
	var tokens []Token
	for tok := ts.Next(); tok != nil; tok = ts.Next() {
		tokens = append(tokens, *tok)
	}
	if err := ts.Err(); err != nil {
		return tokens, err
	}
	return tokens, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifier(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func isPunctuation(r rune) bool {
	return strings.ContainsRune(",;(){}[]", r)
}

func isOperator(r rune) bool {
	return strings.ContainsRune("+-*/%=|&<>!", r)
}
