// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package server exposes the HTTP API: the command submission endpoint,
// a health probe over both stores, and a service info document.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Submitter executes a command batch against the named database and
// returns the joined per-line output.
type Submitter interface {
	Run(ctx context.Context, database, commands string) (string, error)
}

// HealthChecker reports reachability of the backing stores.
type HealthChecker interface {
	PingMongo(ctx context.Context) error
	PingRedis(ctx context.Context) error
}

// Config holds the HTTP server configuration.
type Config struct {
	ListenAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Token        string
	Version      string
}

// Server is the HTTP front end over the runner and stores.
type Server struct {
	httpServer *http.Server
	runner     Submitter
	health     HealthChecker
	logger     *slog.Logger
	config     Config
}

// New wires the routes and returns a server ready to start.
func New(cfg Config, runner Submitter, health HealthChecker, logger *slog.Logger) *Server {
	s := &Server{
		runner: runner,
		health: health,
		logger: logger,
		config: cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleInfo)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/submit", s.requireToken(s.handleSubmit))

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.loggingMiddleware(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Start serves until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.config.ListenAddr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully drains in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// loggingMiddleware logs every request with its final status code.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper captures the status code written by a handler.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
