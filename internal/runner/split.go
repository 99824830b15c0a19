// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package runner

import "strings"

// splitLines breaks a batch at newlines and drops blank lines. Used for
// Redis batches, where commands never span lines.
func splitLines(commands string) []string {
	var out []string
	for _, line := range strings.Split(commands, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitMongoBatch breaks a Mongo batch into statements. Shell-style
// statements may span lines when a document literal is open, so a newline
// or semicolon only terminates a statement while parentheses, braces, and
// brackets are balanced outside string literals. Continuation lines are
// joined with a single space.
func splitMongoBatch(commands string) []string {
	var (
		out      []string
		current  strings.Builder
		depth    int
		inString bool
		escaped  bool
	)

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		current.Reset()
		if stmt != "" {
			out = append(out, stmt)
		}
	}

	for _, ch := range commands {
		if inString {
			current.WriteRune(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			current.WriteRune(ch)
		case '(', '{', '[':
			depth++
			current.WriteRune(ch)
		case ')', '}', ']':
			depth--
			current.WriteRune(ch)
		case '\n', ';':
			if depth > 0 {
				// Statement continues; collapse the break into a space.
				current.WriteRune(' ')
			} else {
				flush()
			}
		default:
			current.WriteRune(ch)
		}
	}
	flush()
	return out
}
