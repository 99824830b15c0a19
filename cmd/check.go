// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nguyenduc21766/nosql-cloud/internal/config"
	"github.com/nguyenduc21766/nosql-cloud/internal/logging"
	"github.com/nguyenduc21766/nosql-cloud/internal/store"
)

// checkCmd represents the check command for verifying store connectivity.
// It shows the configured connection targets with credentials masked and
// reports whether each store answers a ping.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify MongoDB and Redis connectivity",
	Long: `The check command reads the service configuration, connects to both stores,
and reports whether each one answers. Connection strings are displayed with
credentials masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Configured Stores")).
			WithPadding(1).
			Printfln("MongoDB: %s (db %s)\nRedis:   %s",
				logging.Mask(cfg.MongoURI), cfg.MongoDB, cfg.RedisAddr)
		pterm.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.DialTimeout+time.Second)
		defer cancel()

		spinner, _ := pterm.DefaultSpinner.Start("Connecting...")
		stores, err := store.Open(ctx, cfg)
		if err != nil {
			spinner.Fail("Connection failed")
			pterm.Println("   " + logging.PresentError("connect", err))
			return err
		}
		spinner.Success("Both stores reachable")

		return stores.Close(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
