package config_test

import (
	"testing"
	"time"

	"github.com/iho/ledgercore/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StorageBackend != "postgres" {
		t.Fatalf("expected default backend postgres, got %s", cfg.StorageBackend)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.PostTimeout != 10*time.Second {
		t.Fatalf("expected default post timeout 10s, got %s", cfg.PostTimeout)
	}

	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("expected default idempotency TTL 24h, got %s", cfg.IdempotencyTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POST_TIMEOUT", "3s")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StorageBackend != "memory" {
		t.Fatalf("expected memory backend, got %s", cfg.StorageBackend)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected custom HTTP port, got %s", cfg.HTTPPort)
	}

	if cfg.PostTimeout != 3*time.Second {
		t.Fatalf("expected custom post timeout, got %s", cfg.PostTimeout)
	}

	if cfg.LogFormat != "console" {
		t.Fatalf("expected console log format, got %s", cfg.LogFormat)
	}
}
