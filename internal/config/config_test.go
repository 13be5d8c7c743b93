package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "3")
	t.Setenv("ALLOWED_ORIGINS", " https://quiz.example.com, ,http://localhost:5173 ")
	t.Setenv("AUTH_RATE_LIMIT", "not-a-number")
	t.Setenv("AUTO_MIGRATE", "true")

	cfg := Load()

	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 3*1024*1024 {
		t.Fatalf("expected 3 MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://quiz.example.com" {
		t.Fatalf("unexpected origins: %q", cfg.AllowedOrigins)
	}
	if cfg.AuthRateLimit != 30 {
		t.Fatalf("expected fallback rate limit 30, got %d", cfg.AuthRateLimit)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("expected AUTO_MIGRATE to be honored")
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKey.SessionKey("abc"); got != "session:abc" {
		t.Fatalf("unexpected session key %q", got)
	}

	window := time.Unix(1700000000, 0)
	if got := CacheKey.RateLimitKey("auth", "10.0.0.1", window); got != "ratelimit:auth:10.0.0.1:1700000000" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
}
