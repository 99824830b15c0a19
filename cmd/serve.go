// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nguyenduc21766/nosql-cloud/internal/config"
	"github.com/nguyenduc21766/nosql-cloud/internal/logging"
	"github.com/nguyenduc21766/nosql-cloud/internal/mongoexec"
	"github.com/nguyenduc21766/nosql-cloud/internal/redisexec"
	"github.com/nguyenduc21766/nosql-cloud/internal/runner"
	"github.com/nguyenduc21766/nosql-cloud/internal/server"
	"github.com/nguyenduc21766/nosql-cloud/internal/store"
	"github.com/nguyenduc21766/nosql-cloud/internal/token"
)

// serveCmd represents the serve command for running the HTTP service.
// It connects to both stores, wires the execution pipeline, and serves
// until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP command execution service",
	Long: `The serve command starts the HTTP server exposing the command submission API.
It connects to MongoDB and Redis at startup and refuses to start if either
store is unreachable.

Configuration is read from environment variables (optionally from a .env
file in the working directory). The submission token is read from
settings.json, a .token file, or the SUBMIT_TOKEN environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is fine; explicit env vars still apply.
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		tok, err := token.Load(".")
		if err != nil {
			if errors.Is(err, token.ErrNotFound) {
				pterm.Println("❌ No submission token configured")
				pterm.Println("   Provide one via settings.json, a .token file, or SUBMIT_TOKEN")
			}
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		ctx := cmd.Context()
		spinner, _ := pterm.DefaultSpinner.Start("Connecting to stores...")
		stores, err := store.Open(ctx, cfg)
		if err != nil {
			spinner.Fail("Store connection failed")
			pterm.Println("   " + logging.PresentError("connect", err))
			return err
		}
		spinner.Success("Connected to MongoDB and Redis")

		srv := server.New(server.Config{
			ListenAddr:   cfg.ListenAddr,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			Token:        tok,
			Version:      Version,
		}, runner.New(mongoexec.New(stores.DB), redisexec.New(stores.Redis)), stores, logger)

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("NoSQL Cloud")).
			WithPadding(1).
			Printfln("Listening on %s\nMongoDB: %s (db %s)\nRedis:   %s",
				cfg.ListenAddr, logging.Mask(cfg.MongoURI), cfg.MongoDB, cfg.RedisAddr)

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			_ = stores.Close(context.Background())
			return err
		case <-runCtx.Done():
		}

		pterm.Println()
		pterm.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
		return stores.Close(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
