package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("REDIS_ADDR", "")
		t.Setenv("JWT_EXPIRES_IN", "")
		t.Setenv("SESSION_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.RedisAddr != "" {
			t.Errorf("expected empty redis address, got %s", cfg.RedisAddr)
		}
		if cfg.SessionTTL != 24*time.Hour {
			t.Errorf("expected session ttl to follow jwt expiry, got %s", cfg.SessionTTL)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("JWT_EXPIRES_IN", "2h")
		t.Setenv("SESSION_TTL", "30m")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.RedisDB != 3 {
			t.Errorf("expected redis db 3, got %d", cfg.RedisDB)
		}
		if cfg.JWTExpirationDur != 2*time.Hour {
			t.Errorf("expected 2h expiry, got %s", cfg.JWTExpirationDur)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("expected 30m session ttl, got %s", cfg.SessionTTL)
		}
		if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
			t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("invalid_duration_falls_back", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "soon")
		t.Setenv("SESSION_TTL", "")

		cfg, _ := Load()
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected fallback of 24h, got %s", cfg.JWTExpirationDur)
		}
	})
}
