// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asm

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes gpuir assembly source.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  int
	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	// Estimate ~1 token per 6 characters of source.
	estTokens := len(source) / 6
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estTokens),
	}
}

// Tokenize returns all tokens from the source.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.pos
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

func (l *Lexer) scanToken() error {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case '<':
		l.addToken(TokenLess)
	case '>':
		l.addToken(TokenGreater)
	case ',':
		l.addToken(TokenComma)
	case ':':
		l.addToken(TokenColon)
	case '=':
		l.addToken(TokenEqual)

	case '-':
		if l.match('>') {
			l.addToken(TokenArrow)
		} else {
			l.addToken(TokenError)
		}

	case '/':
		if l.match('/') {
			// Line comment
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else {
			l.addToken(TokenError)
		}

	case '@':
		return l.symbol()

	case '"':
		return l.scanString()

	// Whitespace
	case ' ', '\r', '\t':
		// Ignore whitespace
	case '\n':
		l.line++
		l.column = 1

	default:
		if isDigit(r) {
			l.number()
		} else if isAlpha(r) || r == '_' {
			l.identifier()
		} else {
			l.addToken(TokenError)
		}
	}

	return nil
}

// symbol scans an @name reference. The stored lexeme drops the sigil.
func (l *Lexer) symbol() error {
	if !isAlpha(l.peek()) && l.peek() != '_' {
		l.addToken(TokenError)
		return nil
	}
	for isIdentPart(l.peek()) {
		l.advance()
	}
	l.tokens = append(l.tokens, Token{
		Kind:   TokenSymbol,
		Lexeme: l.source[l.start+1 : l.pos],
		Line:   l.line,
		Column: l.column - (l.pos - l.start),
	})
	return nil
}

// scanString scans a quoted byte string, decoding escapes. The contents
// are consumed bytewise so that arbitrary bytes survive untouched.
func (l *Lexer) scanString() error {
	var buf strings.Builder
	for {
		if l.isAtEnd() {
			return &ParseError{
				Message:    "unterminated string",
				Token:      Token{Kind: TokenEOF, Line: l.line, Column: l.column},
				Incomplete: true,
			}
		}
		b := l.advanceByte()
		switch b {
		case '"':
			l.tokens = append(l.tokens, Token{
				Kind:   TokenString,
				Lexeme: buf.String(),
				Line:   l.line,
				Column: l.column - (l.pos - l.start),
			})
			return nil
		case '\n':
			return &ParseError{
				Message: "newline in string",
				Token:   Token{Kind: TokenError, Line: l.line, Column: l.column},
			}
		case '\\':
			if l.isAtEnd() {
				return &ParseError{
					Message:    "unterminated string",
					Token:      Token{Kind: TokenEOF, Line: l.line, Column: l.column},
					Incomplete: true,
				}
			}
			e := l.advanceByte()
			switch {
			case e == '\\':
				buf.WriteByte('\\')
			case e == '"':
				buf.WriteByte('"')
			case isHexByte(e):
				if l.isAtEnd() || !isHexByte(l.source[l.pos]) {
					return &ParseError{
						Message: "escape needs two hex digits",
						Token:   Token{Kind: TokenError, Line: l.line, Column: l.column},
					}
				}
				lo := l.advanceByte()
				buf.WriteByte(hexValue(e)<<4 | hexValue(lo))
			default:
				return &ParseError{
					Message: fmt.Sprintf("invalid escape \\%c in string", e),
					Token:   Token{Kind: TokenError, Line: l.line, Column: l.column},
				}
			}
		default:
			buf.WriteByte(b)
		}
	}
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}
	l.addToken(TokenInt)
}

func (l *Lexer) identifier() {
	for isIdentPart(l.peek()) {
		l.advance()
	}

	text := l.source[l.start:l.pos]
	kind := l.lookupKeyword(text)
	l.addToken(kind)
}

var keywords = map[string]TokenKind{
	"module":     TokenModule,
	"func":       TokenFunc,
	"global":     TokenGlobal,
	"constant":   TokenConstant,
	"attributes": TokenAttributes,
	"return":     TokenReturn,
	"addr_of":    TokenAddrOf,
	"elem_ptr":   TokenElemPtr,
}

func (l *Lexer) lookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return TokenIdent
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Line:   l.line,
		Column: l.column - (l.pos - l.start),
	})
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.column += size
	return r
}

func (l *Lexer) advanceByte() byte {
	b := l.source[l.pos]
	l.pos++
	l.column++
	return b
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if r != expected {
		return false
	}
	l.pos += size
	l.column += size
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

// isIdentPart reports whether r can continue an identifier. Dots are
// legal so that namespaced attribute keys like gpu.kernel_module lex as
// one token.
func isIdentPart(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_' || r == '.'
}

func isHexByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
