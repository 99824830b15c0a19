// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package parser

import (
	"reflect"
	"testing"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
)

func TestParseMongo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *MongoOperation
	}{
		{
			name:  "insertOne",
			input: `db.users.insertOne({"name": "Ann"})`,
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "insertOne",
				Args:       []any{map[string]any{"name": "Ann"}},
			},
		},
		{
			name:  "find without filter",
			input: "db.users.find()",
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "find",
			},
		},
		{
			name:  "find with empty filter",
			input: "db.users.find({})",
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "find",
				Args:       []any{map[string]any{}},
			},
		},
		{
			name:  "find with filter and projection",
			input: `db.users.find({"age": 30}, {"name": 1})`,
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "find",
				Args: []any{
					map[string]any{"age": int64(30)},
					map[string]any{"name": int64(1)},
				},
			},
		},
		{
			name:  "find with chained modifiers in order",
			input: `db.users.find({}).sort({"age": -1}).skip(2).limit(5)`,
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "find",
				Args:       []any{map[string]any{}},
				Modifiers: []Modifier{
					{Name: "sort", Args: []any{map[string]any{"age": int64(-1)}}},
					{Name: "skip", Args: []any{int64(2)}},
					{Name: "limit", Args: []any{int64(5)}},
				},
			},
		},
		{
			name:  "find with count modifier",
			input: `db.users.find({"active": true}).count()`,
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "find",
				Args:       []any{map[string]any{"active": true}},
				Modifiers:  []Modifier{{Name: "count"}},
			},
		},
		{
			name:  "updateOne",
			input: `db.users.updateOne({"name": "Ann"}, {"$set": {"age": 31}})`,
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "updateOne",
				Args: []any{
					map[string]any{"name": "Ann"},
					map[string]any{"$set": map[string]any{"age": int64(31)}},
				},
			},
		},
		{
			name:  "deleteMany without filter",
			input: "db.users.deleteMany()",
			expected: &MongoOperation{
				Collection: "users",
				Operation:  "deleteMany",
			},
		},
		{
			name:  "aggregate pipeline",
			input: `db.orders.aggregate([{"$match": {"paid": true}}, {"$count": "n"}])`,
			expected: &MongoOperation{
				Collection: "orders",
				Operation:  "aggregate",
				Args: []any{[]any{
					map[string]any{"$match": map[string]any{"paid": true}},
					map[string]any{"$count": "n"},
				}},
			},
		},
		{
			name:  "drop",
			input: "db.temp.drop()",
			expected: &MongoOperation{
				Collection: "temp",
				Operation:  "drop",
			},
		},
		{
			name:  "drop with options document",
			input: "db.temp.drop({})",
			expected: &MongoOperation{
				Collection: "temp",
				Operation:  "drop",
				Args:       []any{map[string]any{}},
			},
		},
		{
			name:  "createCollection",
			input: "db.logs.createCollection()",
			expected: &MongoOperation{
				Collection: "logs",
				Operation:  "createCollection",
			},
		},
		{
			name:  "float values decode as float64",
			input: `db.metrics.insertOne({"score": 3.5})`,
			expected: &MongoOperation{
				Collection: "metrics",
				Operation:  "insertOne",
				Args:       []any{map[string]any{"score": 3.5}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMongo(tt.input)
			if err != nil {
				t.Fatalf("ParseMongo() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseMongo() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseMongo_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  errors.Kind
	}{
		{name: "missing db prefix", input: `users.find({})`, kind: errors.Parse},
		{name: "unsupported operation", input: `db.users.explode({})`, kind: errors.Parse},
		{name: "missing collection", input: `db.find({})`, kind: errors.Parse},
		{name: "insertOne without document", input: `db.users.insertOne()`, kind: errors.Parse},
		{name: "insertOne with non-object", input: `db.users.insertOne(5)`, kind: errors.Parse},
		{name: "insertMany with object", input: `db.users.insertMany({"a": 1})`, kind: errors.Parse},
		{name: "updateOne with one argument", input: `db.users.updateOne({"a": 1})`, kind: errors.Parse},
		{name: "aggregate with object", input: `db.orders.aggregate({"$match": {}})`, kind: errors.Parse},
		{name: "drop with non-object argument", input: `db.users.drop(5)`, kind: errors.Parse},
		{name: "drop with two arguments", input: `db.users.drop({}, {})`, kind: errors.Parse},
		{name: "unknown modifier", input: `db.users.find({}).explain()`, kind: errors.Parse},
		{name: "limit without argument", input: `db.users.find({}).limit()`, kind: errors.Parse},
		{name: "limit with float", input: `db.users.find({}).limit(2.5)`, kind: errors.Parse},
		{name: "limit with negative", input: `db.users.find({}).limit(-1)`, kind: errors.Parse},
		{name: "sort with two fields", input: `db.users.find({}).sort({"a": 1, "b": -1})`, kind: errors.Parse},
		{name: "sort with string direction", input: `db.users.find({}).sort({"a": "asc"})`, kind: errors.Parse},
		{name: "count modifier on countDocuments", input: `db.users.countDocuments({}).count()`, kind: errors.Parse},
		{name: "modifier on insertOne", input: `db.users.insertOne({"a": 1}).limit(1)`, kind: errors.Parse},
		{name: "missing closing parenthesis", input: `db.users.find({}`, kind: errors.Parse},
		{name: "unterminated object literal", input: `db.users.find({"a": 1`, kind: errors.Lex},
		{name: "unterminated string", input: `db.users.insertOne({"name": "Ann`, kind: errors.Lex},
		{name: "malformed JSON literal", input: `db.users.insertOne({name: "Ann"})`, kind: errors.Parse},
		{name: "trailing tokens", input: `db.users.find({}) extra`, kind: errors.Parse},
		{name: "empty line", input: "", kind: errors.Parse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMongo(tt.input)
			if err == nil {
				t.Fatal("ParseMongo() expected error, got nil")
			}
			if errors.KindOf(err) != tt.kind {
				t.Errorf("error kind = %q, want %q (err: %v)", errors.KindOf(err), tt.kind, err)
			}
		})
	}
}
