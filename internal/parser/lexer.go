// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package parser turns submitted command lines into executable descriptors.
// It contains a small lexer shared by both surface syntaxes, an expression
// parser for MongoDB-shell-style lines and a token parser for
// Redis-CLI-style lines. Parsing is a pure function of the input line; all
// produced tokens and descriptors are request-scoped.
package parser

import (
	"fmt"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// TokenEOF marks the end of the line.
	TokenEOF TokenType = iota

	// Identifiers and literals
	TokenIdentifier // db, users, insertOne
	TokenString     // "string literal"
	TokenNumber     // 123, 123.45, -7
	TokenObject     // {...} balanced raw object literal
	TokenArray      // [...] balanced raw array literal

	// Punctuation
	TokenDot        // .
	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,
)

// String returns a human-readable name for the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenObject:
		return "OBJECT"
	case TokenArray:
		return "ARRAY"
	case TokenDot:
		return "DOT"
	case TokenLeftParen:
		return "LEFT_PAREN"
	case TokenRightParen:
		return "RIGHT_PAREN"
	case TokenComma:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token with its position in the line.
type Token struct {
	Type     TokenType
	Value    string // raw text; for strings the unquoted content
	Position int    // byte position in the input line
}

// String returns a string representation of the token.
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

// Lexer performs lexical analysis of one command line.
type Lexer struct {
	input    string
	position int  // current position (points to current char)
	readPos  int  // reading position (after current char)
	ch       byte // current char under examination
}

// NewLexer creates a lexer for the given line.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize returns all tokens of the line in order, ending with an EOF
// token. It fails when a quote or bracket is left unterminated.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	pos := l.position

	switch l.ch {
	case '.':
		l.readChar()
		return Token{Type: TokenDot, Value: ".", Position: pos}, nil
	case '(':
		l.readChar()
		return Token{Type: TokenLeftParen, Value: "(", Position: pos}, nil
	case ')':
		l.readChar()
		return Token{Type: TokenRightParen, Value: ")", Position: pos}, nil
	case ',':
		l.readChar()
		return Token{Type: TokenComma, Value: ",", Position: pos}, nil
	case '"':
		value, err := l.readString()
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenString, Value: value, Position: pos}, nil
	case '{':
		raw, err := l.readBalanced('{', '}')
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenObject, Value: raw, Position: pos}, nil
	case '[':
		raw, err := l.readBalanced('[', ']')
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenArray, Value: raw, Position: pos}, nil
	case 0:
		return Token{Type: TokenEOF, Position: pos}, nil
	default:
		if isLetter(l.ch) {
			return Token{Type: TokenIdentifier, Value: l.readIdentifier(), Position: pos}, nil
		}
		if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())) {
			return Token{Type: TokenNumber, Value: l.readNumber(), Position: pos}, nil
		}
		return Token{}, errors.Newf(errors.Lex, "unexpected character %q at position %d", string(l.ch), pos)
	}
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // NUL represents end of line
	} else {
		l.ch = l.input[l.readPos]
	}
	l.position = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing position.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// readIdentifier reads an identifier (letters, digits, underscores, dollar signs).
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads a numeric literal (integer or float, optional sign).
func (l *Lexer) readNumber() string {
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

// readString reads a double-quoted string literal, handling \" and \\
// escapes. The returned value excludes the surrounding quotes with escape
// sequences resolved.
func (l *Lexer) readString() (string, error) {
	start := l.position
	var out []byte
	for {
		l.readChar()
		switch l.ch {
		case '"':
			l.readChar() // consume closing quote
			return string(out), nil
		case 0:
			return "", errors.Newf(errors.Lex, "unterminated string literal at position %d", start)
		case '\\':
			l.readChar()
			if l.ch == 0 {
				return "", errors.Newf(errors.Lex, "unterminated string literal at position %d", start)
			}
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, l.ch)
			}
		default:
			out = append(out, l.ch)
		}
	}
}

// readBalanced captures a raw object or array literal from the opening
// delimiter to its matching closer, respecting string literals and nested
// braces/brackets of either kind. The raw text, delimiters included, is
// returned for strict JSON decoding by the caller.
func (l *Lexer) readBalanced(open, close byte) (string, error) {
	start := l.position
	depthBrace, depthBracket := 0, 0
	inStr := false
	esc := false

	for ; l.ch != 0; l.readChar() {
		ch := l.ch
		if esc {
			esc = false
			continue
		}
		if ch == '\\' {
			esc = true
			continue
		}
		if inStr {
			if ch == '"' {
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{':
			depthBrace++
		case '}':
			depthBrace--
		case '[':
			depthBracket++
		case ']':
			depthBracket--
		}
		if depthBrace == 0 && depthBracket == 0 {
			raw := l.input[start : l.position+1]
			l.readChar() // move past the closing delimiter
			return raw, nil
		}
	}
	if inStr {
		return "", errors.Newf(errors.Lex, "unterminated string literal inside %q literal at position %d", string(open), start)
	}
	return "", errors.Newf(errors.Lex, "unterminated %q literal at position %d", string(open), start)
}

// skipWhitespace skips whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Fields splits a Redis-style command line into whitespace-separated
// fields, keeping double-quoted segments together with their embedded
// whitespace and resolving \" and \\ escapes. An unterminated quote is a
// lex error.
func Fields(line string) ([]string, error) {
	var fields []string
	var cur []byte
	inField := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			inField = true
			start := i
			closed := false
			for i++; i < len(line); i++ {
				if line[i] == '\\' && i+1 < len(line) {
					i++
					cur = append(cur, line[i])
					continue
				}
				if line[i] == '"' {
					closed = true
					break
				}
				cur = append(cur, line[i])
			}
			if !closed {
				return nil, errors.Newf(errors.Lex, "unterminated string literal at position %d", start)
			}
		case ch == ' ' || ch == '\t':
			if inField {
				fields = append(fields, string(cur))
				cur = cur[:0]
				inField = false
			}
		default:
			inField = true
			cur = append(cur, ch)
		}
	}
	if inField {
		fields = append(fields, string(cur))
	}
	return fields, nil
}
