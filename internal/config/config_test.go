// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Backend.APIURL != "http://localhost:3501" {
		t.Errorf("APIURL = %q, want http://localhost:3501", cfg.Backend.APIURL)
	}
	if cfg.Backend.HealthIntervalSecs != 30 {
		t.Errorf("HealthIntervalSecs = %d, want 30", cfg.Backend.HealthIntervalSecs)
	}
	if cfg.Backend.LogLimit != 100 {
		t.Errorf("LogLimit = %d, want 100", cfg.Backend.LogLimit)
	}
	if cfg.Logs.Password != "" {
		t.Error("log password must default to unset")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[site]
name = "blake"
url = "https://blake.dev"

[backend]
api_url = "http://backend.internal:9000"
timeout_secs = 5

[logs]
password = "s3cret"

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Backend.APIURL != "http://backend.internal:9000" {
		t.Errorf("APIURL = %q", cfg.Backend.APIURL)
	}
	if cfg.Backend.TimeoutSecs != 5 {
		t.Errorf("TimeoutSecs = %d, want 5", cfg.Backend.TimeoutSecs)
	}
	if cfg.Logs.Password != "s3cret" {
		t.Errorf("Password = %q, want s3cret", cfg.Logs.Password)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.UI.Theme)
	}
	// Unset values fall back to defaults.
	if cfg.Backend.HealthIntervalSecs != 30 {
		t.Errorf("HealthIntervalSecs = %d, want default 30", cfg.Backend.HealthIntervalSecs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_API_URL", "http://override:4000")
	t.Setenv("FOLIO_LOG_PASSWORD", "hunter2")
	t.Setenv("FOLIO_LOG_LIMIT", "50")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.APIURL != "http://override:4000" {
		t.Errorf("APIURL = %q, want env override", cfg.Backend.APIURL)
	}
	if cfg.Logs.Password != "hunter2" {
		t.Errorf("Password = %q, want env override", cfg.Logs.Password)
	}
	if cfg.Backend.LogLimit != 50 {
		t.Errorf("LogLimit = %d, want 50", cfg.Backend.LogLimit)
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := Default()
	cfg.SetDefaults()

	cfg.Backend.APIURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a malformed URL")
	}

	cfg.Backend.APIURL = "ftp://example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a non-http scheme")
	}
}

func TestValidateRejectsBadTheme(t *testing.T) {
	cfg := Default()
	cfg.SetDefaults()
	cfg.UI.Theme = "neon"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an unknown theme")
	}
}

func TestValidateRejectsExcessiveLogLimit(t *testing.T) {
	cfg := Default()
	cfg.SetDefaults()
	cfg.Backend.LogLimit = 5000

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted log_limit above the cap")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("FOLIO_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults for missing file", err)
	}
	if cfg.Backend.APIURL != "http://localhost:3501" {
		t.Errorf("APIURL = %q, want default", cfg.Backend.APIURL)
	}
}
