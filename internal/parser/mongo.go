// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package parser

import (
	"encoding/json"
	"strings"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
)

// MongoOperation is the parsed form of one MongoDB-shell-style line,
// ready for execution: db.<collection>.<operation>(<args>)[.<modifier>(...)]*.
type MongoOperation struct {
	Collection string
	Operation  string
	Args       []any      // decoded strict-JSON values in call order
	Modifiers  []Modifier // chained cursor modifiers in call order
}

// Modifier is one chained cursor-shaping call recorded in call order.
type Modifier struct {
	Name string // limit, skip, sort or count
	Args []any
}

// arity bounds the number of primary arguments per operation.
type arity struct {
	min, max int
}

// mongoOperations is the supported operation set with argument arities.
// Anything outside this set is a parse error, not a runtime error.
var mongoOperations = map[string]arity{
	"insertOne":        {1, 1},
	"insertMany":       {1, 1},
	"find":             {0, 2}, // filter and optional projection
	"findOne":          {0, 2},
	"updateOne":        {2, 2},
	"updateMany":       {2, 2},
	"deleteOne":        {0, 1},
	"deleteMany":       {0, 1},
	"aggregate":        {1, 1},
	"countDocuments":   {0, 1},
	"drop":             {0, 1},
	"createCollection": {0, 1},
}

// modifierArity bounds the number of arguments per chained modifier.
var modifierArity = map[string]arity{
	"limit": {1, 1},
	"skip":  {1, 1},
	"sort":  {1, 1},
	"count": {0, 0},
}

// ParseMongo parses one MongoDB-shell-style command line into an operation
// descriptor. Object and array arguments are decoded as strict JSON;
// single-quoted strings and unquoted keys are not accepted.
func ParseMongo(line string) (*MongoOperation, error) {
	tokens, err := NewLexer(line).Tokenize()
	if err != nil {
		return nil, err
	}

	p := &mongoParser{tokens: tokens}

	if !p.acceptIdentifier("db") {
		return nil, errors.New(errors.Parse, "MongoDB commands must start with 'db.'")
	}
	if !p.accept(TokenDot) {
		return nil, errors.New(errors.Parse, "expected '.' after 'db'")
	}

	collection := p.current()
	if collection.Type != TokenIdentifier {
		return nil, errors.New(errors.Parse, "expected collection name after 'db.'")
	}
	p.advance()

	if !p.accept(TokenDot) {
		return nil, errors.New(errors.Parse, "expected '.' after collection name")
	}

	opTok := p.current()
	if opTok.Type != TokenIdentifier {
		return nil, errors.New(errors.Parse, "expected operation name")
	}
	p.advance()

	bounds, ok := mongoOperations[opTok.Value]
	if !ok {
		return nil, errors.Newf(errors.Parse, "unsupported MongoDB operation: %s", opTok.Value)
	}

	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if len(args) < bounds.min || len(args) > bounds.max {
		return nil, arityError(opTok.Value, bounds, len(args))
	}

	op := &MongoOperation{
		Collection: collection.Value,
		Operation:  opTok.Value,
		Args:       args,
	}
	if err := checkArgShapes(op); err != nil {
		return nil, err
	}

	// Chained modifiers, recorded in call order.
	for p.current().Type == TokenDot {
		p.advance()
		mod, err := p.parseModifier()
		if err != nil {
			return nil, err
		}
		op.Modifiers = append(op.Modifiers, *mod)
	}

	if p.current().Type != TokenEOF {
		return nil, errors.Newf(errors.Parse, "unexpected token after command: %s", p.current().Value)
	}

	// Cursor modifiers only make sense on a find chain. This also settles
	// the countDocuments-versus-.count() ambiguity: the combination is
	// rejected outright instead of silently picking one behavior.
	if len(op.Modifiers) > 0 && op.Operation != "find" {
		return nil, errors.Newf(errors.Parse, "chained modifiers are not supported after %s", op.Operation)
	}

	return op, nil
}

// mongoParser consumes a token sequence produced for one line.
type mongoParser struct {
	tokens []Token
	pos    int
}

func (p *mongoParser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *mongoParser) advance() { p.pos++ }

// accept consumes the current token when it has the given type.
func (p *mongoParser) accept(tt TokenType) bool {
	if p.current().Type != tt {
		return false
	}
	p.advance()
	return true
}

// acceptIdentifier consumes the current token when it is the given identifier.
func (p *mongoParser) acceptIdentifier(value string) bool {
	tok := p.current()
	if tok.Type != TokenIdentifier || tok.Value != value {
		return false
	}
	p.advance()
	return true
}

// parseArgList parses '(' value {',' value} ')' and decodes each value.
func (p *mongoParser) parseArgList() ([]any, error) {
	if !p.accept(TokenLeftParen) {
		return nil, errors.New(errors.Parse, "expected '(' after operation name")
	}
	var args []any
	if p.accept(TokenRightParen) {
		return args, nil
	}
	for {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, val)
		if p.accept(TokenComma) {
			continue
		}
		if p.accept(TokenRightParen) {
			return args, nil
		}
		return nil, errors.New(errors.Parse, "missing closing parenthesis in operation")
	}
}

// parseValue decodes one argument token into a Go value.
func (p *mongoParser) parseValue() (any, error) {
	tok := p.current()
	switch tok.Type {
	case TokenString:
		p.advance()
		return tok.Value, nil
	case TokenNumber:
		p.advance()
		return decodeNumber(tok.Value)
	case TokenObject, TokenArray:
		p.advance()
		return decodeJSON(tok.Value)
	case TokenIdentifier:
		switch tok.Value {
		case "true":
			p.advance()
			return true, nil
		case "false":
			p.advance()
			return false, nil
		case "null":
			p.advance()
			return nil, nil
		}
		return nil, errors.Newf(errors.Parse, "unexpected identifier %q in argument list", tok.Value)
	default:
		return nil, errors.Newf(errors.Parse, "unexpected token %s in argument list", tok)
	}
}

// parseModifier parses one chained call after the primary operation.
func (p *mongoParser) parseModifier() (*Modifier, error) {
	tok := p.current()
	if tok.Type != TokenIdentifier {
		return nil, errors.New(errors.Parse, "expected modifier name after '.'")
	}
	bounds, ok := modifierArity[tok.Value]
	if !ok {
		return nil, errors.Newf(errors.Parse, "unsupported modifier: %s", tok.Value)
	}
	p.advance()

	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if len(args) < bounds.min || len(args) > bounds.max {
		return nil, arityError(tok.Value, bounds, len(args))
	}

	mod := &Modifier{Name: tok.Value, Args: args}
	switch mod.Name {
	case "limit", "skip":
		if _, ok := mod.Args[0].(int64); !ok {
			return nil, errors.Newf(errors.Parse, "%s(n) requires an integer", mod.Name)
		}
		if mod.Args[0].(int64) < 0 {
			return nil, errors.Newf(errors.Parse, "%s(n) requires a non-negative integer", mod.Name)
		}
	case "sort":
		spec, ok := mod.Args[0].(map[string]any)
		if !ok || len(spec) != 1 {
			return nil, errors.New(errors.Parse, `sort expects one field: {"field": 1|-1}`)
		}
		for _, dir := range spec {
			if _, ok := dir.(int64); !ok {
				return nil, errors.New(errors.Parse, `sort expects one field: {"field": 1|-1}`)
			}
		}
	}
	return mod, nil
}

// checkArgShapes validates per-operation argument shapes beyond arity.
func checkArgShapes(op *MongoOperation) error {
	requireObject := func(i int, what string) error {
		if i >= len(op.Args) {
			return nil
		}
		if _, ok := op.Args[i].(map[string]any); !ok {
			return errors.Newf(errors.Parse, "%s requires %s document", op.Operation, what)
		}
		return nil
	}

	switch op.Operation {
	case "insertOne":
		return requireObject(0, "a")
	case "insertMany", "aggregate":
		if _, ok := op.Args[0].([]any); !ok {
			if op.Operation == "insertMany" {
				return errors.New(errors.Parse, "insertMany requires an array of documents")
			}
			return errors.New(errors.Parse, "aggregate requires an array pipeline")
		}
		return nil
	case "updateOne", "updateMany":
		if err := requireObject(0, "a filter"); err != nil {
			return err
		}
		return requireObject(1, "an update")
	case "find", "findOne":
		if err := requireObject(0, "a filter"); err != nil {
			return err
		}
		return requireObject(1, "a projection")
	case "deleteOne", "deleteMany", "countDocuments":
		return requireObject(0, "a filter")
	case "createCollection", "drop":
		return requireObject(0, "an options")
	}
	return nil
}

func arityError(name string, bounds arity, got int) error {
	switch {
	case bounds.min == bounds.max && bounds.min == 0:
		return errors.Newf(errors.Parse, "%s takes no arguments, got %d", name, got)
	case bounds.min == bounds.max:
		return errors.Newf(errors.Parse, "%s requires exactly %d argument(s), got %d", name, bounds.min, got)
	default:
		return errors.Newf(errors.Parse, "%s requires between %d and %d argument(s), got %d", name, bounds.min, bounds.max, got)
	}
}

// decodeJSON decodes a raw object or array literal as strict JSON. Numbers
// are preserved as int64 when integral, float64 otherwise.
func decodeJSON(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(errors.Parse, "invalid JSON literal", err)
	}
	if dec.More() {
		return nil, errors.New(errors.Parse, "invalid JSON literal: trailing data")
	}
	return normalizeNumbers(v), nil
}

func decodeNumber(raw string) (any, error) {
	var n json.Number = json.Number(raw)
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, errors.Newf(errors.Parse, "invalid number literal: %s", raw)
	}
	return f, nil
}

// normalizeNumbers walks a decoded JSON value converting json.Number into
// int64 or float64 so the driver stores proper numeric BSON types.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}
