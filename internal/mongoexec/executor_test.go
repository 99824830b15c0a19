// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mongoexec

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nguyenduc21766/nosql-cloud/internal/parser"
)

func TestFindOptions(t *testing.T) {
	mods := []parser.Modifier{
		{Name: "sort", Args: []any{map[string]any{"age": int64(-1)}}},
		{Name: "skip", Args: []any{int64(2)}},
		{Name: "limit", Args: []any{int64(5)}},
	}

	opts, err := findOptions(mods)
	if err != nil {
		t.Fatalf("findOptions() error: %v", err)
	}
	if opts.Limit == nil || *opts.Limit != 5 {
		t.Errorf("Limit = %v, want 5", opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 2 {
		t.Errorf("Skip = %v, want 2", opts.Skip)
	}
	sortSpec, ok := opts.Sort.(bson.D)
	if !ok || len(sortSpec) != 1 {
		t.Fatalf("Sort = %v, want single-field bson.D", opts.Sort)
	}
	if sortSpec[0].Key != "age" || sortSpec[0].Value != -1 {
		t.Errorf("Sort = %v, want {age: -1}", sortSpec)
	}
}

func TestFindOptions_LaterModifierWins(t *testing.T) {
	mods := []parser.Modifier{
		{Name: "limit", Args: []any{int64(10)}},
		{Name: "limit", Args: []any{int64(3)}},
	}

	opts, err := findOptions(mods)
	if err != nil {
		t.Fatalf("findOptions() error: %v", err)
	}
	if opts.Limit == nil || *opts.Limit != 3 {
		t.Errorf("Limit = %v, want 3 (last call wins)", opts.Limit)
	}
}

func TestHasCountModifier(t *testing.T) {
	if hasCountModifier([]parser.Modifier{{Name: "limit", Args: []any{int64(1)}}}) {
		t.Error("hasCountModifier() = true for limit-only chain")
	}
	if !hasCountModifier([]parser.Modifier{{Name: "count"}}) {
		t.Error("hasCountModifier() = false for count chain")
	}
}

func TestFilterAndProjectionDefaults(t *testing.T) {
	if got := filter(nil); len(got.(bson.M)) != 0 {
		t.Errorf("filter(nil) = %v, want empty filter", got)
	}
	if got := filter([]any{map[string]any{"a": int64(1)}}); got.(map[string]any)["a"] != int64(1) {
		t.Errorf("filter() did not pass through the first argument")
	}

	proj := projection(nil).(bson.M)
	if proj["_id"] != 0 {
		t.Errorf("projection(nil) = %v, want _id exclusion", proj)
	}
	explicit := projection([]any{map[string]any{}, map[string]any{"name": int64(1)}})
	if explicit.(map[string]any)["name"] != int64(1) {
		t.Errorf("projection() did not pass through the second argument")
	}
}
