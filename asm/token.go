// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package asm

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent  // bare identifier, attribute keys included (may contain dots)
	TokenSymbol // @name, Lexeme holds the name without the sigil
	TokenString // "...", Lexeme holds the decoded bytes
	TokenInt

	// Punctuation
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenLess       // <
	TokenGreater    // >
	TokenComma      // ,
	TokenColon      // :
	TokenEqual      // =
	TokenArrow      // ->

	// Keywords
	TokenModule
	TokenFunc
	TokenGlobal
	TokenConstant
	TokenAttributes
	TokenReturn
	TokenAddrOf
	TokenElemPtr
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "Error"
	case TokenIdent:
		return "Ident"
	case TokenSymbol:
		return "Symbol"
	case TokenString:
		return "String"
	case TokenInt:
		return "Int"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenEqual:
		return "="
	case TokenArrow:
		return "->"
	case TokenModule:
		return "module"
	case TokenFunc:
		return "func"
	case TokenGlobal:
		return "global"
	case TokenConstant:
		return "constant"
	case TokenAttributes:
		return "attributes"
	case TokenReturn:
		return "return"
	case TokenAddrOf:
		return "addr_of"
	case TokenElemPtr:
		return "elem_ptr"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}
