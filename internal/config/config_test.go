package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.MLServiceURL != "http://localhost:8000" {
			t.Errorf("expected default ML service URL, got %s", cfg.MLServiceURL)
		}
		if !cfg.MLFallbackEnabled {
			t.Error("expected fallback to be enabled by default")
		}
		if cfg.MLTimeout != 10*time.Second {
			t.Errorf("expected ML timeout of 10s, got %s", cfg.MLTimeout)
		}
		if cfg.HealthInterval != time.Minute {
			t.Errorf("expected health interval of 1m, got %s", cfg.HealthInterval)
		}
		if cfg.MLRateLimit != 0 {
			t.Errorf("expected rate limiting to be disabled, got %g", cfg.MLRateLimit)
		}
	})
	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("ML_SERVICE_URL", "http://ml.internal:9000")
		t.Setenv("ML_FALLBACK_ENABLED", "false")
		t.Setenv("ML_TIMEOUT", "3s")
		t.Setenv("ML_RATE_LIMIT", "2.5")
		t.Setenv("ML_RATE_BURST", "4")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if cfg.MLServiceURL != "http://ml.internal:9000" {
			t.Errorf("unexpected ML service URL: %s", cfg.MLServiceURL)
		}
		if cfg.MLFallbackEnabled {
			t.Error("expected fallback to be disabled")
		}
		if cfg.MLTimeout != 3*time.Second {
			t.Errorf("expected ML timeout of 3s, got %s", cfg.MLTimeout)
		}
		if cfg.MLRateLimit != 2.5 || cfg.MLRateBurst != 4 {
			t.Errorf("unexpected rate limit settings: %g/%d", cfg.MLRateLimit, cfg.MLRateBurst)
		}
	})
	t.Run("invalid values fail", func(t *testing.T) {
		tests := []struct {
			key   string
			value string
		}{
			{"ML_FALLBACK_ENABLED", "maybe"},
			{"ML_TIMEOUT", "soon"},
			{"ML_TIMEOUT", "-1s"},
			{"HEALTH_INTERVAL", "10ms"},
			{"ML_RATE_LIMIT", "-1"},
			{"HISTORY_MAX", "many"},
		}
		for _, tc := range tests {
			t.Run(tc.key+"="+tc.value, func(t *testing.T) {
				t.Setenv(tc.key, tc.value)
				if _, err := Load(); err == nil {
					t.Errorf("expected config to fail for %s=%s", tc.key, tc.value)
				}
			})
		}
	})
}
