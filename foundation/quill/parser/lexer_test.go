// File: lexer_test.go
// Title: Quill Lexer Unit Tests
// Description: Tests tokenization rules, positions and lexical errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-10

package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	qerror "github.com/msto63/quill/foundation/core/error"
)

var ignorePositions = cmpopts.IgnoreFields(Token{}, "Line", "Column")

func numTok(text string, v float64) Token { return Token{Type: TokenNumber, Text: text, Number: v} }
func opTok(text string) Token             { return Token{Type: TokenOperator, Text: text} }
func punTok(text string) Token            { return Token{Type: TokenPunctuation, Text: text} }
func idTok(text string) Token             { return Token{Type: TokenIdentifier, Text: text} }
func strTok(text string) Token            { return Token{Type: TokenString, Text: text} }
func kwTok(text string, kw Keyword) Token { return Token{Type: TokenKeyword, Text: text, Keyword: kw} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "arithmetic",
			input: "2 + 3 * 4",
			want:  []Token{numTok("2", 2), opTok("+"), numTok("3", 3), opTok("*"), numTok("4", 4)},
		},
		{
			name:  "empty input",
			input: "  \n\t ",
			want:  nil,
		},
		{
			name:  "comments are skipped",
			input: "# heading\n1 # trailing\n# last",
			want:  []Token{numTok("1", 1)},
		},
		{
			name:  "fraction",
			input: "3.25",
			want:  []Token{numTok("3.25", 3.25)},
		},
		{
			name:  "trailing dot",
			input: "5.",
			want:  []Token{numTok("5.", 5)},
		},
		{
			name:  "string escapes are copied literally",
			input: `"a\nb\"c\\"`,
			want:  []Token{strTok(`anb"c\`)},
		},
		{
			name:  "unterminated string",
			input: `"abc`,
			want:  []Token{strTok("abc")},
		},
		{
			name:  "keywords",
			input: "if then else fn true false",
			want: []Token{
				kwTok("if", KeywordIf), kwTok("then", KeywordThen), kwTok("else", KeywordElse),
				kwTok("fn", KeywordFn), kwTok("true", KeywordTrue), kwTok("false", KeywordFalse),
			},
		},
		{
			name:  "identifiers",
			input: "print_range _x λ fn2 iffy",
			want:  []Token{idTok("print_range"), idTok("_x"), idTok("λ"), idTok("fn2"), idTok("iffy")},
		},
		{
			name:  "operator runs form one token",
			input: "a<=b && c +- 1",
			want: []Token{
				idTok("a"), opTok("<="), idTok("b"), opTok("&&"), idTok("c"), opTok("+-"), numTok("1", 1),
			},
		},
		{
			name:  "punctuation",
			input: "f(a, b); {}[]",
			want: []Token{
				idTok("f"), punTok("("), idTok("a"), punTok(","), idTok("b"), punTok(")"), punTok(";"),
				punTok("{"), punTok("}"), punTok("["), punTok("]"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got, ignorePositions, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("x =\n  42")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := [][2]int{{1, 1}, {1, 3}, {2, 3}}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Line != want[i][0] || tok.Column != want[i][1] {
			t.Errorf("token %s at %d:%d, want %d:%d", tok, tok.Line, tok.Column, want[i][0], want[i][1])
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"unknown char", "1 + $", "Cannot handle char: '$' (1:5)"},
		{"second dot", "1.2.3", "Cannot handle char: '.' (1:4)"},
		{"after newline", "x\n  @", "Cannot handle char: '@' (2:3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize(%q) expected error", tt.input)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !qerror.HasCode(err, qerror.CodeLexical) {
				t.Errorf("error code = %v, want %v", qerror.GetCode(err), qerror.CodeLexical)
			}
		})
	}
}

func TestTokenStreamLookahead(t *testing.T) {
	ts := NewTokenStream(NewInputStream("a b"))

	first := ts.Peek()
	if again := ts.Peek(); again != first {
		t.Fatal("Peek() must be idempotent")
	}
	if next := ts.Next(); next != first {
		t.Fatal("Next() must return the peeked token")
	}
	if tok := ts.Next(); tok == nil || tok.Text != "b" {
		t.Fatalf("Next() = %v, want b", tok)
	}
	if !ts.EOF() {
		t.Error("EOF() = false after last token")
	}
	if ts.Next() != nil {
		t.Error("Next() at end should be nil")
	}
}

func TestInputStream(t *testing.T) {
	s := NewInputStream("ab\nc")

	if s.Peek() != 'a' || s.Line() != 1 || s.Column() != 1 {
		t.Fatalf("initial state = %q %d:%d", s.Peek(), s.Line(), s.Column())
	}
	for _, want := range "ab\n" {
		if got := s.Next(); got != want {
			t.Fatalf("Next() = %q, want %q", got, want)
		}
	}
	if s.Line() != 2 || s.Column() != 1 {
		t.Errorf("after newline at %d:%d, want 2:1", s.Line(), s.Column())
	}
	s.Next()
	if !s.EOF() || s.Next() != 0 || s.Peek() != 0 {
		t.Error("exhausted stream should report EOF and return 0")
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{numTok("2", 2), "Number(2)"},
		{opTok("+"), "Operator(+)"},
		{strTok("hi"), `String("hi")`},
		{kwTok("fn", KeywordFn), "Keyword(fn)"},
		{punTok(";"), "Punctuation(;)"},
		{idTok("x"), "Identifier(x)"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
