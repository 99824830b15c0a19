// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the NoSQL Cloud
// service. It implements subcommands for running the HTTP server and
// checking store connectivity using the Cobra CLI framework, with pterm
// for terminal output.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "nosql-cloud",
	Short:         "HTTP execution service for MongoDB and Redis command batches",
	Long: `NoSQL Cloud accepts MongoDB shell and Redis CLI command batches over HTTP,
executes them against live stores, and returns the per-command output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("nosql-cloud %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}
