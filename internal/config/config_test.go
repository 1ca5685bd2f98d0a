package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.EventBuffer != 100 {
		t.Errorf("EventBuffer = %d", cfg.EventBuffer)
	}
	if cfg.CompletionTimeout != 90*time.Second {
		t.Errorf("CompletionTimeout = %v", cfg.CompletionTimeout)
	}
	if cfg.ReaperMaxAge != 10*time.Minute {
		t.Errorf("ReaperMaxAge = %v", cfg.ReaperMaxAge)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("QUIZ_EVENT_BUFFER", "25")
	t.Setenv("COMPLETION_TIMEOUT", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9999" || cfg.DBDriver != "postgres" {
		t.Errorf("overrides ignored: %+v", cfg)
	}
	if cfg.EventBuffer != 25 {
		t.Errorf("EventBuffer = %d", cfg.EventBuffer)
	}
	if cfg.CompletionTimeout != 30*time.Second {
		t.Errorf("CompletionTimeout = %v", cfg.CompletionTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
	t.Setenv("QUIZ_EVENT_BUFFER", "lots")
	t.Setenv("COMPLETION_TIMEOUT", "soon")

	cfg := FromEnv()
	if cfg.EventBuffer != 100 {
		t.Errorf("EventBuffer = %d, want default 100", cfg.EventBuffer)
	}
	if cfg.CompletionTimeout != 90*time.Second {
		t.Errorf("CompletionTimeout = %v, want default 90s", cfg.CompletionTimeout)
	}
}
