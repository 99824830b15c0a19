// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package parser

import (
	"testing"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
)

func TestLexer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "simple chain call",
			input: "db.users.find()",
			expected: []Token{
				{Type: TokenIdentifier, Value: "db", Position: 0},
				{Type: TokenDot, Value: ".", Position: 2},
				{Type: TokenIdentifier, Value: "users", Position: 3},
				{Type: TokenDot, Value: ".", Position: 8},
				{Type: TokenIdentifier, Value: "find", Position: 9},
				{Type: TokenLeftParen, Value: "(", Position: 13},
				{Type: TokenRightParen, Value: ")", Position: 14},
				{Type: TokenEOF, Position: 15},
			},
		},
		{
			name:  "object literal captured raw",
			input: `db.users.find({"age": {"$gt": 21}})`,
			expected: []Token{
				{Type: TokenIdentifier, Value: "db", Position: 0},
				{Type: TokenDot, Value: ".", Position: 2},
				{Type: TokenIdentifier, Value: "users", Position: 3},
				{Type: TokenDot, Value: ".", Position: 8},
				{Type: TokenIdentifier, Value: "find", Position: 9},
				{Type: TokenLeftParen, Value: "(", Position: 13},
				{Type: TokenObject, Value: `{"age": {"$gt": 21}}`, Position: 14},
				{Type: TokenRightParen, Value: ")", Position: 34},
				{Type: TokenEOF, Position: 35},
			},
		},
		{
			name:  "array literal with nested objects",
			input: `db.users.insertMany([{"a": 1}, {"b": 2}])`,
			expected: []Token{
				{Type: TokenIdentifier, Value: "db", Position: 0},
				{Type: TokenDot, Value: ".", Position: 2},
				{Type: TokenIdentifier, Value: "users", Position: 3},
				{Type: TokenDot, Value: ".", Position: 8},
				{Type: TokenIdentifier, Value: "insertMany", Position: 9},
				{Type: TokenLeftParen, Value: "(", Position: 19},
				{Type: TokenArray, Value: `[{"a": 1}, {"b": 2}]`, Position: 20},
				{Type: TokenRightParen, Value: ")", Position: 40},
				{Type: TokenEOF, Position: 41},
			},
		},
		{
			name:  "string literal with escaped quote",
			input: `db.notes.insertOne({"text": "say \"hi\""})`,
			expected: []Token{
				{Type: TokenIdentifier, Value: "db", Position: 0},
				{Type: TokenDot, Value: ".", Position: 2},
				{Type: TokenIdentifier, Value: "notes", Position: 3},
				{Type: TokenDot, Value: ".", Position: 8},
				{Type: TokenIdentifier, Value: "insertOne", Position: 9},
				{Type: TokenLeftParen, Value: "(", Position: 18},
				{Type: TokenObject, Value: `{"text": "say \"hi\""}`, Position: 19},
				{Type: TokenRightParen, Value: ")", Position: 41},
				{Type: TokenEOF, Position: 42},
			},
		},
		{
			name:  "numbers",
			input: "limit(10, 3.5, -7)",
			expected: []Token{
				{Type: TokenIdentifier, Value: "limit", Position: 0},
				{Type: TokenLeftParen, Value: "(", Position: 5},
				{Type: TokenNumber, Value: "10", Position: 6},
				{Type: TokenComma, Value: ",", Position: 8},
				{Type: TokenNumber, Value: "3.5", Position: 10},
				{Type: TokenComma, Value: ",", Position: 13},
				{Type: TokenNumber, Value: "-7", Position: 15},
				{Type: TokenRightParen, Value: ")", Position: 17},
				{Type: TokenEOF, Position: 18},
			},
		},
		{
			name:  "bare string token",
			input: `createCollection("logs")`,
			expected: []Token{
				{Type: TokenIdentifier, Value: "createCollection", Position: 0},
				{Type: TokenLeftParen, Value: "(", Position: 16},
				{Type: TokenString, Value: "logs", Position: 17},
				{Type: TokenRightParen, Value: ")", Position: 23},
				{Type: TokenEOF, Position: 24},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize() error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Tokenize() produced %d tokens, want %d: %v", len(got), len(tt.expected), got)
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("token[%d] = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated string", input: `db.users.insertOne({"name": "Ann`},
		{name: "unterminated object", input: `db.users.insertOne({"name": "Ann"`},
		{name: "unterminated array", input: `db.users.insertMany([{"a": 1}`},
		{name: "unexpected character", input: "db.users.find() ; drop"},
		{name: "escape at end of line", input: `db.users.find("abc\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input).Tokenize()
			if err == nil {
				t.Fatal("Tokenize() expected error, got nil")
			}
			if errors.KindOf(err) != errors.Lex {
				t.Errorf("error kind = %q, want %q", errors.KindOf(err), errors.Lex)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain fields",
			input:    "SET key1 hello",
			expected: []string{"SET", "key1", "hello"},
		},
		{
			name:     "quoted value keeps whitespace",
			input:    `SET key1 "hello world"`,
			expected: []string{"SET", "key1", "hello world"},
		},
		{
			name:     "escaped quote inside value",
			input:    `SET key1 "say \"hi\""`,
			expected: []string{"SET", "key1", `say "hi"`},
		},
		{
			name:     "empty quoted value",
			input:    `SET key1 ""`,
			expected: []string{"SET", "key1", ""},
		},
		{
			name:     "extra whitespace collapsed",
			input:    "  LPUSH   mylist  a   b ",
			expected: []string{"LPUSH", "mylist", "a", "b"},
		},
		{
			name:     "pattern argument",
			input:    "KEYS user:*",
			expected: []string{"KEYS", "user:*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fields(tt.input)
			if err != nil {
				t.Fatalf("Fields() error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Fields() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("field[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := Fields(`SET key1 "hello`)
		if err == nil {
			t.Fatal("Fields() expected error, got nil")
		}
		if errors.KindOf(err) != errors.Lex {
			t.Errorf("error kind = %q, want %q", errors.KindOf(err), errors.Lex)
		}
	})
}
