package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FRACTURAS_API_URL", "")
	t.Setenv("FRACTURAS_HTTP_TIMEOUT", "")
	t.Setenv("FRACTURAS_CONFIG_DIR", "")

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("APIBaseURL=%q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout=%v", cfg.HTTPTimeout)
	}
	if cfg.ConfigDir != "" {
		t.Fatalf("ConfigDir=%q", cfg.ConfigDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FRACTURAS_API_URL", "https://api.example.test")
	t.Setenv("FRACTURAS_HTTP_TIMEOUT", "5s")
	t.Setenv("FRACTURAS_CONFIG_DIR", "/tmp/fracturas-test")

	cfg := Load()
	if cfg.APIBaseURL != "https://api.example.test" {
		t.Fatalf("APIBaseURL=%q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("HTTPTimeout=%v", cfg.HTTPTimeout)
	}
	if cfg.ConfigDir != "/tmp/fracturas-test" {
		t.Fatalf("ConfigDir=%q", cfg.ConfigDir)
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("FRACTURAS_HTTP_TIMEOUT", "not-a-duration")
	if got := Load().HTTPTimeout; got != 30*time.Second {
		t.Fatalf("HTTPTimeout=%v", got)
	}
}
