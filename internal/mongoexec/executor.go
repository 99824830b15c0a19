// Package mongoexec executes parsed MongoDB operation descriptors against a
// native driver database handle. It maps each supported operation to the
// matching driver call, applies chained cursor modifiers in the order they
// were written, and serializes results to the display strings returned to
// the caller. Driver errors pass through verbatim wrapped in a typed
// execution error.
package mongoexec

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
	"github.com/nguyenduc21766/nosql-cloud/internal/parser"
)

// Executor runs Mongo operations on a single database.
type Executor struct {
	db *mongo.Database
}

// New creates an Executor bound to the given database handle.
func New(db *mongo.Database) *Executor {
	return &Executor{db: db}
}

// Execute runs one parsed operation and returns its display string.
func (e *Executor) Execute(ctx context.Context, op *parser.MongoOperation) (string, error) {
	coll := e.db.Collection(op.Collection)

	switch op.Operation {
	case "insertOne":
		if _, err := coll.InsertOne(ctx, op.Args[0]); err != nil {
			return "", execErr(err)
		}
		return "Inserted document", nil

	case "insertMany":
		docs := op.Args[0].([]any)
		res, err := coll.InsertMany(ctx, docs)
		if err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Inserted %d documents", len(res.InsertedIDs)), nil

	case "find":
		return e.find(ctx, coll, op)

	case "findOne":
		opts := options.FindOne().SetProjection(projection(op.Args))
		var doc bson.D
		err := coll.FindOne(ctx, filter(op.Args), opts).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return "No document found", nil
		}
		if err != nil {
			return "", execErr(err)
		}
		return "Found document: " + renderValue(doc), nil

	case "updateOne", "updateMany":
		var res *mongo.UpdateResult
		var err error
		if op.Operation == "updateOne" {
			res, err = coll.UpdateOne(ctx, op.Args[0], op.Args[1])
		} else {
			res, err = coll.UpdateMany(ctx, op.Args[0], op.Args[1])
		}
		if err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Matched %d document(s), modified %d", res.MatchedCount, res.ModifiedCount), nil

	case "deleteOne", "deleteMany":
		var res *mongo.DeleteResult
		var err error
		if op.Operation == "deleteOne" {
			res, err = coll.DeleteOne(ctx, filter(op.Args))
		} else {
			res, err = coll.DeleteMany(ctx, filter(op.Args))
		}
		if err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Deleted %d document(s)", res.DeletedCount), nil

	case "countDocuments":
		n, err := coll.CountDocuments(ctx, filter(op.Args))
		if err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Document count: %d", n), nil

	case "aggregate":
		pipeline := op.Args[0].([]any)
		cursor, err := coll.Aggregate(ctx, pipeline)
		if err != nil {
			return "", execErr(err)
		}
		var docs []bson.D
		if err := cursor.All(ctx, &docs); err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Aggregated %d document(s): %s", len(docs), renderDocs(docs)), nil

	case "drop":
		// An options document, if given, is accepted and ignored.
		if err := coll.Drop(ctx); err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Collection '%s' dropped", op.Collection), nil

	case "createCollection":
		cmd := bson.D{{Key: "create", Value: op.Collection}}
		if len(op.Args) == 1 {
			for k, v := range op.Args[0].(map[string]any) {
				cmd = append(cmd, bson.E{Key: k, Value: v})
			}
		}
		if err := e.db.RunCommand(ctx, cmd).Err(); err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Collection '%s' created", op.Collection), nil
	}

	// Unreachable with a descriptor produced by the parser.
	return "", errors.Newf(errors.MongoExec, "unsupported MongoDB operation: %s", op.Operation)
}

// find executes a find chain. A count() modifier short-circuits to a server
// count of the filter; the remaining modifiers shape the cursor in call
// order before the result set is materialized.
func (e *Executor) find(ctx context.Context, coll *mongo.Collection, op *parser.MongoOperation) (string, error) {
	if hasCountModifier(op.Modifiers) {
		n, err := coll.CountDocuments(ctx, filter(op.Args))
		if err != nil {
			return "", execErr(err)
		}
		return fmt.Sprintf("Document count: %d", n), nil
	}

	opts, err := findOptions(op.Modifiers)
	if err != nil {
		return "", err
	}
	opts.SetProjection(projection(op.Args))

	cursor, err := coll.Find(ctx, filter(op.Args), opts)
	if err != nil {
		return "", execErr(err)
	}
	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return "", execErr(err)
	}
	return fmt.Sprintf("Found %d document(s): %s", len(docs), renderDocs(docs)), nil
}

// filter returns the first argument as the query filter, defaulting to the
// empty filter.
func filter(args []any) any {
	if len(args) >= 1 {
		return args[0]
	}
	return bson.M{}
}

// projection returns the second argument as the projection, defaulting to
// excluding the generated _id field from rendered documents.
func projection(args []any) any {
	if len(args) >= 2 {
		return args[1]
	}
	return bson.M{"_id": 0}
}

// hasCountModifier reports whether the chain ends in a count() call.
func hasCountModifier(mods []parser.Modifier) bool {
	for _, m := range mods {
		if m.Name == "count" {
			return true
		}
	}
	return false
}

// findOptions folds the chained modifiers, in call order, into driver find
// options. Later calls of the same modifier win, matching chained-cursor
// semantics.
func findOptions(mods []parser.Modifier) (*options.FindOptions, error) {
	opts := options.Find()
	for _, m := range mods {
		switch m.Name {
		case "limit":
			opts.SetLimit(m.Args[0].(int64))
		case "skip":
			opts.SetSkip(m.Args[0].(int64))
		case "sort":
			spec := m.Args[0].(map[string]any)
			for field, dir := range spec {
				direction := 1
				if dir.(int64) < 0 {
					direction = -1
				}
				opts.SetSort(bson.D{{Key: field, Value: direction}})
			}
		case "count":
			// handled by the caller before the cursor is built
		default:
			return nil, errors.Newf(errors.MongoExec, "unsupported modifier: %s", m.Name)
		}
	}
	return opts, nil
}

func execErr(err error) error {
	return errors.Wrap(errors.MongoExec, "", err)
}
