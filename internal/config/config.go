// Package config loads client settings from the environment.
package config

import (
	"os"
	"time"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	ConfigDir   string // token storage dir; empty means the platform default
}

func Load() Config {
	return Config{
		APIBaseURL:  getenv("FRACTURAS_API_URL", "http://localhost:8000"),
		HTTPTimeout: getenvDuration("FRACTURAS_HTTP_TIMEOUT", 30*time.Second),
		ConfigDir:   getenv("FRACTURAS_CONFIG_DIR", ""),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
