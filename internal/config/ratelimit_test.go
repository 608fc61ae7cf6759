package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("limiter should default to enabled")
	}
	if cfg.Capacity != 60 || cfg.RefillTokens != 1 {
		t.Fatalf("unexpected defaults: capacity=%d refill=%d", cfg.Capacity, cfg.RefillTokens)
	}
	if cfg.RefillInterval != time.Second {
		t.Fatalf("refill interval = %s, want 1s", cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfigNormalization(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("refill tokens = %d, want clamp to 1", cfg.RefillTokens)
	}
	if want := 5 * cfg.RefillInterval; cfg.TTL != want {
		t.Errorf("ttl = %s, want raised to %s", cfg.TTL, want)
	}
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, POST ,head")
	for _, want := range []string{"GET", "POST", "HEAD"} {
		if !m[want] {
			t.Errorf("method %s missing from %v", want, m)
		}
	}
	if len(m) != 3 {
		t.Errorf("got %d methods, want 3", len(m))
	}
}
