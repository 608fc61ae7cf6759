package middleware

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dinebook/table-reservation/internal/config"
)

// cachedResponse is what we store in Redis for a cache hit: enough to
// replay the response without touching the database.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyRecorder buffers the response body while letting it stream to the
// client. Bodies larger than limit are passed through uncached.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   []byte
	limit  int
	tooBig bool
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if !r.tooBig {
		if r.limit > 0 && len(r.body)+len(b) > r.limit {
			r.tooBig = true
			r.body = nil
		} else {
			r.body = append(r.body, b...)
		}
	}
	return r.ResponseWriter.Write(b)
}

// ResponseCache returns a middleware that serves successful responses for
// the configured methods straight from Redis. Only 200 responses within
// the body size limit are stored; everything else passes through. The
// middleware is a no-op when disabled or when Redis is unavailable.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[c.Request().Method] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var entry cachedResponse
				if json.Unmarshal(raw, &entry) == nil {
					h := c.Response().Header()
					if entry.ContentType != "" {
						h.Set(echo.HeaderContentType, entry.ContentType)
					}
					h.Set("X-Cache", "HIT")
					c.Response().WriteHeader(entry.Status)
					_, werr := c.Response().Write(entry.Body)
					return werr
				}
			}

			rec := &bodyRecorder{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          cfg.MaxBodyBytes,
			}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK && !rec.tooBig {
				entry := cachedResponse{
					Status:      rec.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        rec.body,
				}
				if raw, err := json.Marshal(entry); err == nil {
					// Detached context: the request may already be done.
					_ = rdb.SetEx(context.Background(), key, raw, ttl).Err()
				}
			}
			return nil
		}
	}
}

// cacheKey hashes the request identity into a fixed-size Redis key. The
// strategy decides which request parts participate; the default keys on
// route plus query string so paginated listings cache independently.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var id string
	switch cfg.KeyStrategy {
	case "route":
		id = c.Path()
	case "method_route":
		id = r.Method + " " + c.Path()
	case "route_query_user":
		id = c.Path() + "?" + r.URL.RawQuery + "@" + callerKey(c)
	default: // route_query
		id = c.Path() + "?" + r.URL.RawQuery
	}
	sum := sha1.Sum([]byte(id))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum)
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}
