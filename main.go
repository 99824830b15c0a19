// Package main is the entry point for the NoSQL Cloud service.
// It exposes an HTTP API that executes MongoDB and Redis command batches.
package main

import (
	"github.com/nguyenduc21766/nosql-cloud/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
