package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "NETWORK_FILE", "HTTP_TIMEOUT_SECONDS", "ROUTE_WORKERS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg := Load()
	if cfg.Port != "3000" || cfg.Env != "development" || cfg.NetworkFile != "network.yml" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.RouteWorkers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.RouteWorkers)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("ROUTE_WORKERS", "not-a-number")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()
	if cfg.Port != "8080" || cfg.IsDevelopment() {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.RouteWorkers != 8 {
		t.Errorf("expected fallback to 8 workers, got %d", cfg.RouteWorkers)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Level())
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NETWORK_FILE=city.yml\nPORT=4000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	// Set then unset so the original value comes back after the test.
	t.Setenv("NETWORK_FILE", "")
	os.Unsetenv("NETWORK_FILE")
	t.Setenv("PORT", "5000")

	cfg := Load()
	if cfg.NetworkFile != "city.yml" {
		t.Errorf("expected NETWORK_FILE from .env, got %q", cfg.NetworkFile)
	}
	if cfg.Port != "5000" {
		t.Errorf("expected the environment to win over .env, got %q", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:         "3000",
		Env:          "development",
		NetworkFile:  "network.yml",
		HTTPTimeout:  time.Second,
		RouteWorkers: 1,
		LogLevel:     "info",
		LogFormat:    "text",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty network file", func(c *Config) { c.NetworkFile = "" }},
		{"zero workers", func(c *Config) { c.RouteWorkers = 0 }},
		{"non numeric port", func(c *Config) { c.Port = "http" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
