// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "settings.json"), `{"token":"supersecretkey"}`)

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != "supersecretkey" {
		t.Errorf("Load() = %q, want %q", got, "supersecretkey")
	}
}

func TestLoadFromTokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".token"), "  file-token\n")

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != "file-token" {
		t.Errorf("Load() = %q, want %q", got, "file-token")
	}
}

func TestLoadSettingsPreferredOverTokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "settings.json"), `{"token":"from-settings"}`)
	writeFile(t, filepath.Join(dir, ".token"), "from-file")

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != "from-settings" {
		t.Errorf("Load() = %q, want %q", got, "from-settings")
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SUBMIT_TOKEN", "env-token")

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != "env-token" {
		t.Errorf("Load() = %q, want %q", got, "env-token")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, dir string)
		wantErr error
	}{
		{
			name:    "nothing present",
			prepare: func(t *testing.T, dir string) { t.Setenv("SUBMIT_TOKEN", "") },
			wantErr: ErrNotFound,
		},
		{
			name: "settings without token key",
			prepare: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "settings.json"), `{"other":"x"}`)
			},
		},
		{
			name: "malformed settings",
			prepare: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "settings.json"), `{not json`)
			},
		},
		{
			name: "empty token file",
			prepare: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, ".token"), "   \n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.prepare(t, dir)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
