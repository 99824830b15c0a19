// Package redisexec executes parsed Redis command descriptors against a
// native client handle. Commands from the documented set are dispatched
// through a handler table keyed by command keyword and rendered as
// human-readable display strings; anything outside the table is sent to the
// server through the generic Do passthrough so the native error or reply
// surfaces unmodified.
package redisexec

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
	"github.com/nguyenduc21766/nosql-cloud/internal/parser"
)

// handler executes one command against the client and renders its reply.
type handler func(ctx context.Context, c *redis.Client, args []string) (string, error)

// handlers is the dispatch table for the documented command set.
var handlers = map[string]handler{
	"SET":      cmdSet,
	"GET":      cmdGet,
	"DEL":      cmdDel,
	"EXISTS":   cmdExists,
	"INCR":     cmdIncr,
	"INCRBY":   cmdIncrBy,
	"DECR":     cmdDecr,
	"DECRBY":   cmdDecrBy,
	"EXPIRE":   cmdExpire,
	"TTL":      cmdTTL,
	"KEYS":     cmdKeys,
	"TYPE":     cmdType,
	"STRLEN":   cmdStrLen,
	"RENAME":   cmdRename,
	"FLUSHALL": cmdFlushAll,
	"HSET":     cmdHSet,
	"HGET":     cmdHGet,
	"LPUSH":    cmdLPush,
	"RPUSH":    cmdRPush,
	"LPOP":     cmdLPop,
	"RPOP":     cmdRPop,
	"LRANGE":   cmdLRange,
	"LLEN":     cmdLLen,
	"LINDEX":   cmdLIndex,
	"LINSERT":  cmdLInsert,
	"LTRIM":    cmdLTrim,
	"SADD":     cmdSAdd,
	"SMEMBERS": cmdSMembers,
}

// Executor runs Redis commands on a single client connection pool.
type Executor struct {
	client *redis.Client
}

// New creates an Executor bound to the given client handle.
func New(client *redis.Client) *Executor {
	return &Executor{client: client}
}

// Execute runs one parsed command and returns its display string.
func (e *Executor) Execute(ctx context.Context, cmd *parser.RedisCommand) (string, error) {
	if h, ok := handlers[cmd.Name]; ok {
		return h(ctx, e.client, cmd.Args)
	}
	return cmdDo(ctx, e.client, cmd)
}

// cmdDo is the generic passthrough for commands outside the handler table.
func cmdDo(ctx context.Context, c *redis.Client, cmd *parser.RedisCommand) (string, error) {
	argv := make([]any, 0, len(cmd.Args)+1)
	argv = append(argv, cmd.Name)
	for _, a := range cmd.Args {
		argv = append(argv, a)
	}
	res, err := c.Do(ctx, argv...).Result()
	if err == redis.Nil {
		return "(nil)", nil
	}
	if err != nil {
		return "", execErr(err)
	}
	return renderReply(res), nil
}

// renderReply renders a generic reply: scalars directly, sequences as a
// bracketed, comma-joined list.
func renderReply(v any) string {
	switch val := v.(type) {
	case nil:
		return "(nil)"
	case string:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = renderReply(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return stringify(val)
	}
}

func execErr(err error) error {
	return errors.Wrap(errors.RedisExec, "", err)
}
