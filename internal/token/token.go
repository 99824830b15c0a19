// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package token resolves the bearer token that submit requests must carry.
// Resolution order: settings.json in the working directory, then a plain
// .token file, then the SUBMIT_TOKEN environment variable. The token is a
// deployment secret provisioned next to the service binary.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	settingsFile = "settings.json"
	tokenFile    = ".token"
	envVar       = "SUBMIT_TOKEN"
)

// ErrNotFound is returned when no token source is present.
var ErrNotFound = errors.New("no settings.json, .token file or " + envVar + " variable found")

// Load resolves the expected bearer token from dir.
func Load(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	// settings.json (preferred)
	data, err := os.ReadFile(dir + "/" + settingsFile)
	if err == nil {
		var s struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("parse %s: %w", settingsFile, err)
		}
		tok := strings.TrimSpace(s.Token)
		if tok == "" {
			return "", fmt.Errorf("%s found but missing %q key", settingsFile, "token")
		}
		return tok, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	// .token (plain text fallback)
	data, err = os.ReadFile(dir + "/" + tokenFile)
	if err == nil {
		tok := strings.TrimSpace(string(data))
		if tok == "" {
			return "", fmt.Errorf("%s is empty", tokenFile)
		}
		return tok, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if tok := strings.TrimSpace(os.Getenv(envVar)); tok != "" {
		return tok, nil
	}
	return "", ErrNotFound
}
