package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr ':8080', got %q", cfg.Addr)
	}
	if cfg.SessionLifetime != 24*time.Hour {
		t.Errorf("expected default session lifetime 24h, got %v", cfg.SessionLifetime)
	}
	if cfg.SecureCookies {
		t.Error("expected secure cookies off by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SMF_ADDR", ":9090")
	t.Setenv("SMF_LOG_LEVEL", "debug")
	t.Setenv("SMF_BACKEND_URL", "https://api.example.edu/v1")
	t.Setenv("SMF_SECURE_COOKIES", "true")
	t.Setenv("SMF_SESSION_LIFETIME", "8h")

	cfg := FromEnv()

	if cfg.Addr != ":9090" {
		t.Errorf("expected addr ':9090', got %q", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.LogLevel)
	}
	if cfg.BackendURL != "https://api.example.edu/v1" {
		t.Errorf("expected backend URL override, got %q", cfg.BackendURL)
	}
	if !cfg.SecureCookies {
		t.Error("expected secure cookies enabled")
	}
	if cfg.SessionLifetime != 8*time.Hour {
		t.Errorf("expected session lifetime 8h, got %v", cfg.SessionLifetime)
	}
}

func TestFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("SMF_SECURE_COOKIES", "sometimes")
	t.Setenv("SMF_SESSION_LIFETIME", "-1h")

	cfg := FromEnv()

	if cfg.SecureCookies {
		t.Error("expected invalid bool to keep default")
	}
	if cfg.SessionLifetime != 24*time.Hour {
		t.Errorf("expected invalid duration to keep default, got %v", cfg.SessionLifetime)
	}
}
