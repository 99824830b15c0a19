// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mongoexec

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// renderDocs renders a materialized result set as a bracketed,
// comma-joined document sequence.
func renderDocs(docs []bson.D) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = renderValue(doc)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// renderValue renders one BSON value as JSON-like display text: quoted
// keys, ": " after keys, ", " between members. Documents decoded as bson.D
// keep their stored field order; generated identifiers render as quoted
// hex strings.
func renderValue(v any) string {
	switch val := v.(type) {
	case bson.D:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = strconv.Quote(e.Key) + ": " + renderValue(e.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case bson.M:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ": " + renderValue(val[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case map[string]any:
		return renderValue(bson.M(val))
	case bson.A:
		return renderArray(val)
	case []any:
		return renderArray(val)
	case string:
		return strconv.Quote(val)
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return renderFloat(val)
	case primitive.ObjectID:
		return strconv.Quote(val.Hex())
	case primitive.DateTime:
		return strconv.Quote(val.Time().UTC().Format(time.RFC3339))
	case primitive.Decimal128:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func renderArray(vals []any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = renderValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// renderFloat renders integral doubles without a decimal part, matching
// how the shell displays numbers that round-tripped through BSON doubles.
func renderFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
