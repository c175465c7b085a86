package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.ReaperInterval != time.Minute {
		t.Errorf("expected default reaper interval 1m, got %s", cfg.ReaperInterval)
	}
	if cfg.ReaperBatchSize != 50 {
		t.Errorf("expected default reaper batch size 50, got %d", cfg.ReaperBatchSize)
	}
	if cfg.RateLimitPerMinute != 120 || cfg.RateLimitBurst != 20 {
		t.Errorf("unexpected rate limit defaults: %d/%d", cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("REAPER_INTERVAL", "30s")
	t.Setenv("REAPER_BATCH_SIZE", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.ReaperInterval != 30*time.Second {
		t.Errorf("expected reaper interval 30s, got %s", cfg.ReaperInterval)
	}
	if cfg.ReaperBatchSize != 10 {
		t.Errorf("expected batch size 10, got %d", cfg.ReaperBatchSize)
	}
}

func TestLoadRejectsNonPositiveBatchSize(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REAPER_BATCH_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-positive REAPER_BATCH_SIZE")
	}
}
