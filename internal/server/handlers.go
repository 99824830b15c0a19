// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// submitRequest is the body of POST /api/v1/submit.
type submitRequest struct {
	Database string `json:"database"`
	Commands string `json:"commands"`
}

// submitResponse is the uniform response shape for the submit endpoint,
// for both successful batches and request-level failures.
type submitResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
}

// requireToken rejects requests without the expected bearer token.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.config.Token)) != 1 {
			writeJSON(w, http.StatusUnauthorized, submitResponse{
				Success: false,
				Output:  "Invalid or missing token",
			})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{
			Success: false,
			Output:  "invalid request body: " + err.Error(),
		})
		return
	}

	output, err := s.runner.Run(r.Context(), req.Database, req.Commands)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{
			Success: false,
			Output:  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Success: true, Output: output})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	mongoStatus, redisStatus := "up", "up"
	if err := s.health.PingMongo(ctx); err != nil {
		mongoStatus = "down"
	}
	if err := s.health.PingRedis(ctx); err != nil {
		redisStatus = "down"
	}

	status := "healthy"
	code := http.StatusOK
	if mongoStatus == "down" || redisStatus == "down" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]string{
		"status":  status,
		"mongodb": mongoStatus,
		"redis":   redisStatus,
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "nosql-cloud",
		"version": s.config.Version,
		"endpoints": map[string]string{
			"submit": "POST /api/v1/submit",
			"health": "GET /health",
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
