package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/config"
)

func newTestContext(t *testing.T, method, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(strings.SplitN(target, "?", 2)[0])
	return c
}

func TestCallerKey(t *testing.T) {
	t.Run("string subject", func(t *testing.T) {
		c := newTestContext(t, "GET", "/v1/restaurants")
		c.Set("user_id", "17")
		if got := callerKey(c); got != "17" {
			t.Fatalf("callerKey = %q, want %q", got, "17")
		}
	})
	t.Run("numeric subject", func(t *testing.T) {
		c := newTestContext(t, "GET", "/v1/restaurants")
		c.Set("user_id", float64(42))
		if got := callerKey(c); got != "42" {
			t.Fatalf("callerKey = %q, want %q", got, "42")
		}
	})
	t.Run("anonymous falls back to ip", func(t *testing.T) {
		c := newTestContext(t, "GET", "/v1/restaurants")
		if got := callerKey(c); !strings.HasPrefix(got, "ip:") {
			t.Fatalf("callerKey = %q, want ip: prefix", got)
		}
	})
}

func TestBucketKey(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}
	c := newTestContext(t, "GET", "/v1/restaurants")
	c.Set("user_id", "7")

	got := bucketKey(cfg, c)
	want := "rl:7:GET:/v1/restaurants"
	if got != want {
		t.Fatalf("bucketKey = %q, want %q", got, want)
	}
}

func TestCacheKeyQuerySensitivity(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKey(cfg, newTestContext(t, "GET", "/v1/restaurants?search=sushi"))
	b := cacheKey(cfg, newTestContext(t, "GET", "/v1/restaurants?search=pizza"))
	c := cacheKey(cfg, newTestContext(t, "GET", "/v1/restaurants?search=sushi"))

	if a == b {
		t.Fatalf("different queries share key %q", a)
	}
	if a != c {
		t.Fatalf("same query produced different keys %q and %q", a, c)
	}
	if !strings.HasPrefix(a, "cache:") {
		t.Fatalf("key %q missing prefix", a)
	}
}

func TestCacheKeyRouteStrategyIgnoresQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}

	a := cacheKey(cfg, newTestContext(t, "GET", "/v1/restaurants?search=sushi"))
	b := cacheKey(cfg, newTestContext(t, "GET", "/v1/restaurants?search=pizza"))
	if a != b {
		t.Fatalf("route strategy should ignore query: %q vs %q", a, b)
	}
}
