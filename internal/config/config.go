// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for folio.
//
// Configuration is TOML, with sensible defaults and environment variable
// overrides. Locations in order of precedence:
//   - $FOLIO_CONFIG (explicit path)
//   - ~/.folio/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete folio configuration.
type Config struct {
	// Site holds presentation-only metadata about the portfolio.
	Site SiteConfig `toml:"site" json:"site"`

	// Backend holds connection settings for the chat backend.
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Logs holds log-viewer settings.
	Logs LogsConfig `toml:"logs" json:"logs"`

	// UI holds terminal UI settings.
	UI UIConfig `toml:"ui" json:"ui"`
}

// SiteConfig contains portfolio presentation metadata.
type SiteConfig struct {
	// Name is the portfolio owner's display name.
	Name string `toml:"name" json:"name"`
	// URL is the public site URL shown in the contact panel.
	URL string `toml:"url" json:"url"`
}

// BackendConfig contains chat backend connection settings.
type BackendConfig struct {
	// APIURL is the backend base URL.
	APIURL string `toml:"api_url" json:"api_url"`
	// TimeoutSecs is the request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// HealthIntervalSecs is the connectivity probe period in seconds.
	HealthIntervalSecs int `toml:"health_interval_secs" json:"health_interval_secs"`
	// LogLimit caps log fetches.
	LogLimit int `toml:"log_limit" json:"log_limit"`
}

// LogsConfig contains log-viewer settings.
type LogsConfig struct {
	// Password is the shared secret for the log viewer. Empty disables
	// the viewer entirely. This gates a convenience panel; it is not an
	// authentication mechanism.
	Password string `toml:"password" json:"password"`
	// ArchivePath is the sqlite file for archived logs (empty = default
	// ~/.folio/logs.db).
	ArchivePath string `toml:"archive_path" json:"archive_path"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "auto", "dark", or "light".
	Theme string `toml:"theme" json:"theme"`
	// WordWrap is the markdown render width for plain mode.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name: "blake",
		},
		Backend: BackendConfig{
			APIURL:             "http://localhost:3501",
			TimeoutSecs:        10,
			HealthIntervalSecs: 30,
			LogLimit:           100,
		},
		UI: UIConfig{
			Theme:    "auto",
			WordWrap: 80,
		},
	}
}

// HealthInterval returns the probe period as a duration.
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.Backend.HealthIntervalSecs) * time.Second
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the folio config directory (~/.folio), creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".folio"), nil
}

// Path returns the config file path, honoring $FOLIO_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("FOLIO_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk, applies environment overrides,
// fills defaults, and validates. A missing file is not an error; defaults
// plus overrides are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath reads configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variables on top of file values.
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("FOLIO_API_URL"); u != "" {
		c.Backend.APIURL = u
	}
	if pw := os.Getenv("FOLIO_LOG_PASSWORD"); pw != "" {
		c.Logs.Password = pw
	}
	if name := os.Getenv("FOLIO_SITE_NAME"); name != "" {
		c.Site.Name = name
	}
	if u := os.Getenv("FOLIO_SITE_URL"); u != "" {
		c.Site.URL = u
	}
	if theme := os.Getenv("FOLIO_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if limit := os.Getenv("FOLIO_LOG_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.Backend.LogLimit = n
		}
	}
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Backend.APIURL == "" {
		c.Backend.APIURL = def.Backend.APIURL
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = def.Backend.TimeoutSecs
	}
	if c.Backend.HealthIntervalSecs <= 0 {
		c.Backend.HealthIntervalSecs = def.Backend.HealthIntervalSecs
	}
	if c.Backend.LogLimit <= 0 {
		c.Backend.LogLimit = def.Backend.LogLimit
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.WordWrap <= 0 {
		c.UI.WordWrap = def.UI.WordWrap
	}
	if c.Logs.ArchivePath == "" {
		if dir, err := Dir(); err == nil {
			c.Logs.ArchivePath = filepath.Join(dir, "logs.db")
		}
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.api_url %q is not a valid URL", c.Backend.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.api_url scheme %q must be http or https", u.Scheme)
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme %q must be auto, dark, or light", c.UI.Theme)
	}
	if c.Backend.LogLimit > 1000 {
		return fmt.Errorf("backend.log_limit %d exceeds maximum 1000", c.Backend.LogLimit)
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path, creating the
// directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open config for writing: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
	globalOnce   sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
// Load errors fall back to defaults so the UI can still start and report
// the problem.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
			cfg.SetDefaults()
		}
		globalMu.Lock()
		globalConfig = cfg
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration. Used by the config
// watcher and by tests.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {}) // Load must not clobber an explicit set
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}
