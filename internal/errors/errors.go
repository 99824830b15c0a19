// Package errors defines typed errors with categories for the command
// interpreter. It provides a structured approach to error handling with
// machine-readable error kinds and human-friendly messages, so callers can
// distinguish a malformed command line from a failing store without parsing
// message text.
//
// The package supports wrapping underlying errors while maintaining error
// kind information, which lets native driver messages pass through verbatim.
package errors

import "fmt"

// Kind is a machine-readable error category.
type Kind string

const (
	// Lex indicates a malformed literal or unterminated quote/bracket.
	Lex Kind = "lex_error"
	// Parse indicates an unsupported operation, wrong arity, or malformed grammar.
	Parse Kind = "parse_error"
	// MongoExec indicates a MongoDB driver failure during execution.
	MongoExec Kind = "mongodb_execution_error"
	// RedisExec indicates a Redis client failure during execution.
	RedisExec Kind = "redis_execution_error"
	// BadRequest indicates a request-level failure such as an unknown
	// database selector. It aborts the whole batch.
	BadRequest Kind = "bad_request"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			// Pass-through: native driver messages stay verbatim.
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or the empty Kind for untyped errors.
func KindOf(err error) Kind {
	if e, ok := err.(*E); ok {
		return e.Kind
	}
	return Kind("")
}

// IsFatal reports whether err must abort the whole batch instead of being
// recorded as a per-line failure.
func IsFatal(err error) bool { return KindOf(err) == BadRequest }
