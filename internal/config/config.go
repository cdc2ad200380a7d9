// Package config defines client configuration and its loading hooks.
//
// Conventions:
// - New(ctx) builds a Config with defaults.
// - Load(ctx) layers an optional .env file, an optional YAML file and
//   CODEARENA_* environment variables on top of the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile sends logs to a rotated file. Empty logs to stderr.
	LogFile string `koanf:"log_file"`

	// BaseURL is the backend API root; endpoints are joined onto it.
	BaseURL string `koanf:"base_url"`

	// RequestTimeout bounds each backend call. Zero disables the client-side
	// timeout; calls still end when the command context is cancelled.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// StatePath is the preferences file (remembered user and theme).
	StatePath string `koanf:"state_path"`

	// HistoryFile keeps console command history between sessions.
	HistoryFile string `koanf:"history_file"`

	// LintDelayMS is the debounce between the last edit and a lint pass.
	LintDelayMS int `koanf:"lint_delay_ms"`

	// MetricsAddr, when set, exposes Prometheus metrics on this address.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults. The context is accepted to match the
// rest of the package API and is currently unused.
func New(_ context.Context) *Config {
	dir := defaultStateDir()
	return &Config{
		LogLevel:       "info",
		LogFile:        filepath.Join(dir, "client.log"),
		BaseURL:        "http://127.0.0.1:8000/api",
		RequestTimeout: 0,
		StatePath:      filepath.Join(dir, "state.json"),
		HistoryFile:    filepath.Join(dir, "history"),
		LintDelayMS:    500,
	}
}

// LintDelay returns LintDelayMS as a duration.
func (c *Config) LintDelay() time.Duration {
	return time.Duration(c.LintDelayMS) * time.Millisecond
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "codearena")
	}
	return ".codearena"
}
