package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("TRACKER_STORE", "")
	t.Setenv("LLM_TIMEOUT", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("Env = %q, want dev", cfg.Env)
	}
	if cfg.TrackerStore != "memory" {
		t.Fatalf("TrackerStore = %q, want memory", cfg.TrackerStore)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Fatalf("LLMTimeout = %s", cfg.LLMTimeout)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
}

func TestLoadPostgresWithoutURLFallsBack(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("TRACKER_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	if got := Load().TrackerStore; got != "memory" {
		t.Fatalf("TrackerStore = %q, want memory", got)
	}
}

func TestLoadPostgresWithoutURLKeptInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("TRACKER_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	if got := Load().TrackerStore; got != "postgres" {
		t.Fatalf("TrackerStore = %q, want postgres", got)
	}
}

func TestIsDevLike(t *testing.T) {
	for env, want := range map[string]bool{"dev": true, "local": true, " Dev ": true, "production": false, "staging": false} {
		if got := IsDevLike(env); got != want {
			t.Fatalf("IsDevLike(%q) = %v, want %v", env, got, want)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{name: "seconds", raw: "45", want: 45 * time.Second},
		{name: "go duration", raw: "2m", want: 2 * time.Minute},
		{name: "invalid", raw: "soon", want: time.Second},
		{name: "negative", raw: "-5s", want: time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.raw)
			if got := getEnvDuration("TEST_DURATION", time.Second); got != tt.want {
				t.Fatalf("getEnvDuration(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
