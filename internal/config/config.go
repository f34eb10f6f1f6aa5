package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds configuration for the front-end server.
type ServerConfig struct {
	Addr            string        // Listen address (default ":8080")
	LogLevel        string        // Log level: debug, info, warn, error
	LogFormat       string        // Log format: text, json
	DBPath          string        // SQLite database path (default ~/.smf/sessions.db, ":memory:" for testing)
	BackendURL      string        // Base URL of the student management REST backend
	SecureCookies   bool          // Mark session cookies Secure (HTTPS deployments)
	SessionLifetime time.Duration // Maximum session lifetime
}

// Default returns sensible defaults.
func Default() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       "text",
		BackendURL:      "http://localhost:3000/api",
		SessionLifetime: 24 * time.Hour,
	}
}

// FromEnv returns Default overlaid with SMF_* environment variables.
// A .env file in the working directory is loaded first if present.
func FromEnv() ServerConfig {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("SMF_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SMF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SMF_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("SMF_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SMF_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("SMF_SECURE_COOKIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SecureCookies = b
		}
	}
	if v := os.Getenv("SMF_SESSION_LIFETIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionLifetime = d
		}
	}
	return cfg
}
