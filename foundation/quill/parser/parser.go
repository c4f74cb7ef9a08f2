// File: parser.go
// Title: Quill Recursive Descent Parser
// Description: Builds an AST from the token stream using recursive descent
//              with precedence climbing for binary and assignment operators.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-03
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-03 v0.1.0: Initial parser implementation
// - 2025-02-10 v0.1.1: Right-associative assignment, block scope nodes

package parser

import (
	"fmt"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	qast "github.com/msto63/quill/foundation/quill/ast"
)

// DefaultMaxInputLength limits source size when Options leaves it unset
const DefaultMaxInputLength = 1 << 20

// Binding strength of binary and assignment operators
var precedence = map[string]int{
	"=":  1,
	"||": 2,
	"&&": 3,
	"<":  7, ">": 7, "<=": 7, ">=": 7, "==": 7, "!=": 7,
	"+": 10, "-": 10,
	"*": 20, "/": 20, "%": 20,
}

// Precedence returns the binding strength of op
func Precedence(op string) (int, bool) {
	p, ok := precedence[op]
	return p, ok
}

// Parser turns Quill source into a Program. A Parser keeps no state
// between calls and may be shared.
type Parser struct {
	logger  *qlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger         *qlog.Logger
	MaxInputLength int
}

// New creates a new parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = qlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxInputLength < 0 {
		return nil, qerror.Newf("invalid max input length: %d", opts.MaxInputLength).
			WithCode(qerror.CodeInvalidInput)
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "quill-parser"),
		options: opts,
	}, nil
}

// Parse parses source text into a program
func (p *Parser) Parse(input string) (*qast.Program, error) {
	if len(input) > p.options.MaxInputLength {
		return nil, qerror.Newf("input exceeds maximum length: %d > %d",
			len(input), p.options.MaxInputLength).
			WithCode(qerror.CodeInvalidInput)
	}

	p.logger.Debug("Starting parse", qlog.Fields{
		"length": len(input),
	})

	s := &state{ts: NewTokenStream(NewInputStream(input))}
	program, err := s.parseProgram()
	if err != nil {
		p.logger.Debug("Parse failed", qlog.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	p.logger.Debug("Parse completed", qlog.Fields{
		"statements": len(program.Body),
	})

	return program, nil
}

// ParseExpression parses source that must hold exactly one expression
func (p *Parser) ParseExpression(input string) (qast.Node, error) {
	program, err := p.Parse(input)
	if err != nil {
		return nil, err
	}
	if len(program.Body) != 1 {
		return nil, qerror.Newf("expected one expression, got %d", len(program.Body)).
			WithCode(qerror.CodeParse)
	}
	return program.Body[0], nil
}

// state holds the token stream of one Parse call
type state struct {
	ts *TokenStream
}

// parseProgram parses statements separated by ';' up to end of input
func (s *state) parseProgram() (*qast.Program, error) {
	program := &qast.Program{Body: []qast.Node{}, Pos: qast.Position{Line: 1, Column: 1}}

	for !s.ts.EOF() {
		expr, err := s.parseExpression()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, expr)
		if !s.ts.EOF() {
			if err := s.skipPunctuation(';'); err != nil {
				return nil, err
			}
		}
	}

	// A lexical error ends the stream early
	if err := s.ts.Err(); err != nil {
		return nil, err
	}

	return program, nil
}

func (s *state) parseExpression() (qast.Node, error) {
	atom, err := s.parseAtom()
	if err != nil {
		return nil, err
	}
	result, err := s.maybeBinary(atom, 0)
	if err != nil {
		return nil, err
	}
	if s.isPunctuation('(') {
		return s.parseCall(result)
	}
	return result, nil
}

func (s *state) parseAtom() (qast.Node, error) {
	var (
		result qast.Node
		err    error
	)

	switch {
	case s.isPunctuation('('):
		s.ts.Next()
		if result, err = s.parseExpression(); err != nil {
			return nil, err
		}
		if err = s.skipPunctuation(')'); err != nil {
			return nil, err
		}
	case s.isPunctuation('{'):
		result, err = s.parseBlock()
	case s.isKeyword(KeywordIf):
		result, err = s.parseIf()
	case s.isKeyword(KeywordTrue), s.isKeyword(KeywordFalse):
		tok := s.ts.Next()
		result = &qast.Boolean{Value: tok.Keyword == KeywordTrue, Pos: position(tok)}
	case s.isKeyword(KeywordFn):
		tok := s.ts.Next()
		result, err = s.parseFunction(tok)
	default:
		tok := s.ts.Next()
		switch {
		case tok == nil:
			return nil, s.errorf(nil, "Unexpected end of input")
		case tok.Type == TokenIdentifier:
			result = &qast.Variable{Name: tok.Text, Pos: position(tok)}
		case tok.Type == TokenNumber:
			result = &qast.Number{Value: tok.Number, Pos: position(tok)}
		case tok.Type == TokenString:
			result = &qast.String{Value: tok.Text, Pos: position(tok)}
		default:
			return nil, s.errorf(tok, "Unexpected token: %s", tok)
		}
	}
	if err != nil {
		return nil, err
	}

	if s.isPunctuation('(') {
		return s.parseCall(result)
	}
	return result, nil
}

// parseBlock parses '{' ... '}'. Empty blocks hold false, single
// expressions are not wrapped in a Program.
func (s *state) parseBlock() (qast.Node, error) {
	pos := position(s.ts.Peek())
	body, err := s.delimitedExpressions('{', '}', ';')
	if err != nil {
		return nil, err
	}

	var inner qast.Node
	switch len(body) {
	case 0:
		inner = &qast.Boolean{Value: false, Pos: pos}
	case 1:
		inner = body[0]
	default:
		inner = &qast.Program{Body: body, Pos: pos}
	}
	return &qast.Block{Body: inner, Pos: pos}, nil
}

func (s *state) parseCall(callee qast.Node) (qast.Node, error) {
	args, err := s.delimitedExpressions('(', ')', ',')
	if err != nil {
		return nil, err
	}
	return &qast.Call{Function: callee, Arguments: args, Pos: callee.Position()}, nil
}

func (s *state) parseIf() (qast.Node, error) {
	pos := position(s.ts.Peek())
	if err := s.skipKeyword(KeywordIf); err != nil {
		return nil, err
	}
	condition, err := s.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := s.skipKeyword(KeywordThen); err != nil {
		return nil, err
	}
	then, err := s.parseExpression()
	if err != nil {
		return nil, err
	}

	node := &qast.If{Condition: condition, Then: then, Pos: pos}
	if s.isKeyword(KeywordElse) {
		s.ts.Next()
		if node.Otherwise, err = s.parseExpression(); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// parseFunction parses the parameter list and body following 'fn'
func (s *state) parseFunction(fnTok *Token) (qast.Node, error) {
	params, err := s.delimitedIdentifiers('(', ')', ',')
	if err != nil {
		return nil, err
	}
	body, err := s.parseExpression()
	if err != nil {
		return nil, err
	}
	return &qast.Function{Parameters: params, Body: body, Pos: position(fnTok)}, nil
}

// maybeBinary folds operators binding tighter than precLeft onto left.
// Assignment climbs with one less so that a = b = c nests to the right.
func (s *state) maybeBinary(left qast.Node, precLeft int) (qast.Node, error) {
	tok := s.ts.Peek()
	if tok == nil || tok.Type != TokenOperator {
		return left, nil
	}

	prec, ok := precedence[tok.Text]
	if !ok {
		return nil, s.errorf(tok, "Unknown operator: %s", tok.Text)
	}
	if prec <= precLeft {
		return left, nil
	}
	s.ts.Next()

	atom, err := s.parseAtom()
	if err != nil {
		return nil, err
	}

	climb := prec
	if tok.Text == "=" {
		climb = prec - 1
	}
	right, err := s.maybeBinary(atom, climb)
	if err != nil {
		return nil, err
	}

	var node qast.Node
	if tok.Text == "=" {
		node = &qast.Assign{Operator: tok.Text, Left: left, Right: right, Pos: position(tok)}
	} else {
		node = &qast.Binary{Operator: tok.Text, Left: left, Right: right, Pos: position(tok)}
	}
	return s.maybeBinary(node, precLeft)
}

// delimited walks start item (sep item)* sep? end, calling item for each
// element. Running out of input before end is an error.
func (s *state) delimited(start, end, sep rune, item func() error) error {
	if err := s.skipPunctuation(start); err != nil {
		return err
	}

	first := true
	for !s.ts.EOF() {
		if s.isPunctuation(end) {
			break
		}
		if first {
			first = false
		} else if err := s.skipPunctuation(sep); err != nil {
			return err
		}
		if s.isPunctuation(end) {
			break
		}
		if err := item(); err != nil {
			return err
		}
	}

	return s.skipPunctuation(end)
}

func (s *state) delimitedExpressions(start, end, sep rune) ([]qast.Node, error) {
	out := []qast.Node{}
	err := s.delimited(start, end, sep, func() error {
		expr, err := s.parseExpression()
		if err != nil {
			return err
		}
		out = append(out, expr)
		return nil
	})
	return out, err
}

func (s *state) delimitedIdentifiers(start, end, sep rune) ([]string, error) {
	out := []string{}
	err := s.delimited(start, end, sep, func() error {
		tok := s.ts.Next()
		if tok == nil || tok.Type != TokenIdentifier {
			return s.errorf(tok, "Expected variable name, got: %s", describe(tok))
		}
		out = append(out, tok.Text)
		return nil
	})
	return out, err
}

func (s *state) isPunctuation(r rune) bool {
	return s.ts.Peek().Is(TokenPunctuation, string(r))
}

func (s *state) isKeyword(kw Keyword) bool {
	tok := s.ts.Peek()
	return tok != nil && tok.Type == TokenKeyword && tok.Keyword == kw
}

func (s *state) skipPunctuation(r rune) error {
	if s.isPunctuation(r) {
		s.ts.Next()
		return nil
	}
	return s.errorf(s.ts.Peek(), "Expected punctuation %c", r)
}

func (s *state) skipKeyword(kw Keyword) error {
	if s.isKeyword(kw) {
		s.ts.Next()
		return nil
	}
	return s.errorf(s.ts.Peek(), "Expected keyword %s", kw)
}

// errorf builds a parse error at tok, or at the end of input when tok is
// nil. A pending lexical error takes precedence.
func (s *state) errorf(tok *Token, format string, args ...interface{}) error {
	if err := s.ts.Err(); err != nil {
		return err
	}
	line, column := s.ts.Line(), s.ts.Column()
	if tok != nil {
		line, column = tok.Line, tok.Column
	}
	return qerror.New(fmt.Sprintf(format, args...)).
		WithCode(qerror.CodeParse).
		WithPosition(line, column)
}

func position(tok *Token) qast.Position {
	if tok == nil {
		return qast.Position{}
	}
	return qast.Position{Line: tok.Line, Column: tok.Column}
}

func describe(tok *Token) string {
	if tok == nil {
		return "end of input"
	}
	return tok.String()
}
