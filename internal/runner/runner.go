// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package runner owns the per-request execution loop. It splits a submitted
// batch into command lines, routes each line to the parser and executor
// matching the declared database target, and accumulates per-line output.
// A malformed or failing line is recorded as a failure line and the batch
// continues; only an invalid database selector aborts the request.
package runner

import (
	"context"
	"strings"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
	"github.com/nguyenduc21766/nosql-cloud/internal/parser"
)

// Database selectors accepted in submit requests.
const (
	DatabaseMongo = "mongodb"
	DatabaseRedis = "redis"
)

// MongoExecutor executes one parsed Mongo operation.
type MongoExecutor interface {
	Execute(ctx context.Context, op *parser.MongoOperation) (string, error)
}

// RedisExecutor executes one parsed Redis command.
type RedisExecutor interface {
	Execute(ctx context.Context, cmd *parser.RedisCommand) (string, error)
}

// Runner dispatches command batches to the two executors. Lines within one
// batch run strictly sequentially; concurrent batches from different
// requests share nothing but the executors' client handles.
type Runner struct {
	mongo MongoExecutor
	redis RedisExecutor
}

// New creates a Runner over the given executors.
func New(mongo MongoExecutor, redis RedisExecutor) *Runner {
	return &Runner{mongo: mongo, redis: redis}
}

// Run executes a command batch against the selected database and returns
// the newline-joined per-line output. The returned error is non-nil only
// for request-level failures; per-line failures are reported in the output
// text.
func (r *Runner) Run(ctx context.Context, database, commands string) (string, error) {
	var lines []string
	var execute func(ctx context.Context, line string) (string, error)

	switch strings.ToLower(strings.TrimSpace(database)) {
	case DatabaseMongo:
		lines = splitMongoBatch(commands)
		execute = r.runMongoLine
	case DatabaseRedis:
		lines = splitLines(commands)
		execute = r.runRedisLine
	default:
		return "", errors.Newf(errors.BadRequest, "unsupported database: %q (supported: mongodb, redis)", database)
	}

	var out []string
	for _, line := range lines {
		text, err := execute(ctx, line)
		if err != nil {
			if errors.IsFatal(err) {
				return "", err
			}
			out = append(out, failureLine(database, err))
			continue
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n"), nil
}

func (r *Runner) runMongoLine(ctx context.Context, line string) (string, error) {
	op, err := parser.ParseMongo(line)
	if err != nil {
		return "", err
	}
	return r.mongo.Execute(ctx, op)
}

func (r *Runner) runRedisLine(ctx context.Context, line string) (string, error) {
	cmd, err := parser.ParseRedis(line)
	if err != nil {
		return "", err
	}
	return r.redis.Execute(ctx, cmd)
}

// failureLine renders a per-line failure in the surface matching the
// request's database target. The wrapped native message stays verbatim.
func failureLine(database string, err error) string {
	if strings.EqualFold(strings.TrimSpace(database), DatabaseRedis) {
		return "Redis execution error: " + err.Error()
	}
	return "MongoDB execution error: " + err.Error()
}
