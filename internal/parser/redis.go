// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package parser

import (
	"strings"

	"github.com/nguyenduc21766/nosql-cloud/internal/errors"
)

// RedisCommand is the parsed form of one Redis-CLI-style line: a command
// keyword plus positional arguments. Argument count and types are not
// validated here; the executor and the native client surface those errors.
type RedisCommand struct {
	Name string   // uppercase command keyword
	Args []string // positional arguments, quoted whitespace preserved
}

// ParseRedis parses one Redis-CLI-style command line. The command keyword
// is matched case-insensitively and normalized to uppercase.
func ParseRedis(line string) (*RedisCommand, error) {
	fields, err := Fields(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New(errors.Parse, "empty command")
	}
	name := fields[0]
	if !isCommandWord(name) {
		return nil, errors.Newf(errors.Parse, "invalid command keyword: %s", name)
	}
	return &RedisCommand{
		Name: strings.ToUpper(name),
		Args: fields[1:],
	}, nil
}

// isCommandWord reports whether s has the shape of a Redis command keyword.
func isCommandWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}
