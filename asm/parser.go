// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gogpu/gpuir/ir"
)

// Parser parses gpuir assembly tokens into an ir.Module.
type Parser struct {
	tokens  []Token
	current int
}

// ParseError represents a parsing error.
type ParseError struct {
	Message string
	Token   Token

	// Incomplete marks errors caused by input that ended in the middle
	// of a construct, as when more lines are still being typed.
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// IsIncomplete reports whether err indicates source that ended in the
// middle of a construct rather than source that is malformed.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Incomplete
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// Parse tokenizes and parses source into a module.
func Parse(source string) (*ir.Module, error) {
	lexer := NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse parses the tokens and returns the top-level module.
func (p *Parser) Parse() (*ir.Module, error) {
	if !p.check(TokenModule) {
		return nil, p.errorf("expected module, got %s", p.peek().Kind)
	}
	module, err := p.module()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorf("unexpected token %s after module", p.peek().Kind)
	}
	return module, nil
}

// module parses a module declaration. The leading module keyword has
// been checked by the caller.
func (p *Parser) module() (*ir.Module, *ParseError) {
	p.advance() // consume module

	m := &ir.Module{}
	if p.check(TokenSymbol) {
		m.Name = p.advance().Lexeme
	}
	if p.check(TokenAttributes) {
		attrs, err := p.attrBlock()
		if err != nil {
			return nil, err
		}
		m.Attrs = attrs
	}
	if err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}

	for !p.check(TokenRightBrace) {
		if p.isAtEnd() {
			return nil, p.errorf("expected } to close module, got %s", p.peek().Kind)
		}
		switch {
		case p.check(TokenModule):
			child, err := p.module()
			if err != nil {
				return nil, err
			}
			m.Body = append(m.Body, child)
		case p.check(TokenFunc):
			fn, err := p.function()
			if err != nil {
				return nil, err
			}
			m.Body = append(m.Body, fn)
		case p.check(TokenGlobal):
			g, err := p.global()
			if err != nil {
				return nil, err
			}
			m.Body = append(m.Body, g)
		default:
			return nil, p.errorf("unexpected token %s, expected declaration", p.peek().Kind)
		}
	}
	p.advance() // consume }

	return m, nil
}

// function parses a function declaration or definition.
func (p *Parser) function() (*ir.Func, *ParseError) {
	p.advance() // consume func

	if !p.check(TokenSymbol) {
		return nil, p.errorf("expected function name, got %s", p.peek().Kind)
	}
	fn := &ir.Func{Name: p.advance().Lexeme}

	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}
	if !p.check(TokenRightParen) {
		for {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, t)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}

	if p.match(TokenArrow) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Result = t
	}

	if p.check(TokenAttributes) {
		attrs, err := p.attrBlock()
		if err != nil {
			return nil, err
		}
		fn.Attrs = attrs
	}

	if p.check(TokenLeftBrace) {
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		fn.Body = body
	}

	return fn, nil
}

// global parses a global declaration with an optional byte initializer.
func (p *Parser) global() (*ir.Global, *ParseError) {
	p.advance() // consume global

	g := &ir.Global{}
	if p.match(TokenConstant) {
		g.Const = true
	}

	if !p.check(TokenSymbol) {
		return nil, p.errorf("expected global name, got %s", p.peek().Kind)
	}
	g.Name = p.advance().Lexeme

	if err := p.expectErr(TokenColon); err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	g.Type = t

	if p.match(TokenEqual) {
		if !p.check(TokenString) {
			return nil, p.errorf("expected string initializer, got %s", p.peek().Kind)
		}
		// Non-nil even when empty: an explicit "" initializer stays
		// distinct from no initializer.
		data := p.advance().Lexeme
		g.Data = make([]byte, len(data))
		copy(g.Data, data)
	}

	if p.check(TokenAttributes) {
		attrs, err := p.attrBlock()
		if err != nil {
			return nil, err
		}
		g.Attrs = attrs
	}

	return g, nil
}

// attrBlock parses an attributes { ... } dictionary.
func (p *Parser) attrBlock() (ir.AttrMap, *ParseError) {
	p.advance() // consume attributes

	if err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}
	attrs := make(ir.AttrMap)
	for !p.check(TokenRightBrace) {
		if p.isAtEnd() {
			return nil, p.errorf("expected } to close attributes, got %s", p.peek().Kind)
		}
		if !p.check(TokenIdent) {
			return nil, p.errorf("expected attribute key, got %s", p.peek().Kind)
		}
		keyTok := p.advance()
		if attrs.Has(keyTok.Lexeme) {
			return nil, &ParseError{
				Message: fmt.Sprintf("duplicate attribute %s", keyTok.Lexeme),
				Token:   keyTok,
			}
		}
		if p.match(TokenEqual) {
			switch {
			case p.check(TokenString):
				attrs.SetString(keyTok.Lexeme, p.advance().Lexeme)
			case p.check(TokenSymbol):
				attrs.SetSymbol(keyTok.Lexeme, p.advance().Lexeme)
			default:
				return nil, p.errorf("expected attribute value, got %s", p.peek().Kind)
			}
		} else {
			attrs.SetUnit(keyTok.Lexeme)
		}
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenRightBrace); err != nil {
		return nil, err
	}
	return attrs, nil
}

// block parses a function body. An empty body parses as a non-nil,
// zero-length block so that definitions stay distinct from stubs.
func (p *Parser) block() (ir.Block, *ParseError) {
	p.advance() // consume {

	body := ir.Block{}
	for !p.check(TokenRightBrace) {
		if p.isAtEnd() {
			return nil, p.errorf("expected } to close body, got %s", p.peek().Kind)
		}
		if !p.check(TokenReturn) {
			return nil, p.errorf("unexpected token %s, expected statement", p.peek().Kind)
		}
		p.advance()
		stmt := ir.ReturnStmt{}
		if !p.check(TokenRightBrace) && !p.check(TokenReturn) {
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		body = append(body, stmt)
	}
	p.advance() // consume }

	return body, nil
}

// expression parses an expression.
func (p *Parser) expression() (ir.Expr, *ParseError) {
	switch {
	case p.check(TokenInt):
		tok := p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Message: fmt.Sprintf("integer %s out of range", tok.Lexeme),
				Token:   tok,
			}
		}
		return ir.ConstIntExpr{Value: v}, nil

	case p.check(TokenAddrOf):
		p.advance()
		if err := p.expectErr(TokenLeftParen); err != nil {
			return nil, err
		}
		if !p.check(TokenSymbol) {
			return nil, p.errorf("expected symbol, got %s", p.peek().Kind)
		}
		sym := p.advance().Lexeme
		if err := p.expectErr(TokenRightParen); err != nil {
			return nil, err
		}
		return ir.AddrOfExpr{Symbol: sym}, nil

	case p.check(TokenElemPtr):
		p.advance()
		if err := p.expectErr(TokenLeftParen); err != nil {
			return nil, err
		}
		base, err := p.expression()
		if err != nil {
			return nil, err
		}
		expr := ir.ElemPtrExpr{Base: base}
		for p.match(TokenComma) {
			idx, err := p.expression()
			if err != nil {
				return nil, err
			}
			expr.Indices = append(expr.Indices, idx)
		}
		if err := p.expectErr(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.errorf("unexpected token %s, expected expression", p.peek().Kind)
}

var scalarTypes = map[string]ir.Type{
	"i8":  ir.IntType{Bits: 8},
	"i16": ir.IntType{Bits: 16},
	"i32": ir.IntType{Bits: 32},
	"i64": ir.IntType{Bits: 64},
	"f16": ir.FloatType{Bits: 16},
	"f32": ir.FloatType{Bits: 32},
	"f64": ir.FloatType{Bits: 64},
}

// parseType parses a type.
func (p *Parser) parseType() (ir.Type, *ParseError) {
	if !p.check(TokenIdent) {
		return nil, p.errorf("expected type, got %s", p.peek().Kind)
	}
	tok := p.advance()

	switch tok.Lexeme {
	case "ptr":
		if err := p.expectErr(TokenLess); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expectErr(TokenGreater); err != nil {
			return nil, err
		}
		return ir.PointerType{Elem: elem}, nil

	case "array":
		if err := p.expectErr(TokenLess); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expectErr(TokenComma); err != nil {
			return nil, err
		}
		if !p.check(TokenInt) {
			return nil, p.errorf("expected array length, got %s", p.peek().Kind)
		}
		lenTok := p.advance()
		count, convErr := strconv.Atoi(lenTok.Lexeme)
		if convErr != nil {
			return nil, &ParseError{
				Message: fmt.Sprintf("array length %s out of range", lenTok.Lexeme),
				Token:   lenTok,
			}
		}
		if err := p.expectErr(TokenGreater); err != nil {
			return nil, err
		}
		return ir.ArrayType{Elem: elem, Count: count}, nil
	}

	if t, ok := scalarTypes[tok.Lexeme]; ok {
		return t, nil
	}
	return nil, &ParseError{
		Message: fmt.Sprintf("unknown type %s", tok.Lexeme),
		Token:   tok,
	}
}

// Helper methods

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectErr(kind TokenKind) *ParseError {
	if p.check(kind) {
		p.advance()
		return nil
	}
	return p.errorf("expected %s, got %s", kind, p.peek().Kind)
}

// errorf builds a ParseError at the current token. Errors at EOF are
// marked incomplete.
func (p *Parser) errorf(format string, args ...any) *ParseError {
	tok := p.peek()
	return &ParseError{
		Message:    fmt.Sprintf(format, args...),
		Token:      tok,
		Incomplete: tok.Kind == TokenEOF,
	}
}
