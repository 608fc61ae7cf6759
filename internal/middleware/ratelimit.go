package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dinebook/table-reservation/internal/config"
)

// bucketScript implements a token bucket atomically in Redis. The bucket
// state lives in a hash; refill is computed lazily from the elapsed time
// since the last request. Returns {allowed, remaining, retry_after_ms}.
var bucketScript = redis.NewScript(`
local tokens, stamp = unpack(redis.call('HMGET', KEYS[1], 'tokens', 'stamp'))
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill = tonumber(ARGV[3])
local interval = tonumber(ARGV[4])

tokens = tonumber(tokens)
stamp = tonumber(stamp)
if tokens == nil or stamp == nil then
  tokens = capacity
  stamp = now
end

local steps = math.floor((now - stamp) / interval)
if steps > 0 then
  tokens = math.min(capacity, tokens + steps * refill)
  stamp = stamp + steps * interval
end

local allowed = 0
local retry = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry = interval - (now - stamp)
  if retry < 0 then retry = 0 end
end

redis.call('HMSET', KEYS[1], 'tokens', tokens, 'stamp', stamp)
redis.call('EXPIRE', KEYS[1], ARGV[5])
return {allowed, tokens, retry}
`)

// RateLimit returns a token-bucket middleware backed by Redis. Buckets are
// keyed per caller and route by default so one hot endpoint cannot starve
// the rest of the API for the same user. On Redis errors the request is
// allowed through: the limiter protects capacity, it is not a gatekeeper.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := bucketKey(cfg, c)

			res, err := bucketScript.Run(ctx, rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Int64Slice()
			if err != nil || len(res) != 3 {
				if cfg.Debug {
					c.Logger().Warnf("rate limiter unavailable for %s: %v", key, err)
				}
				return next(c)
			}
			allowed, remaining, retryMs := res[0] == 1, res[1], res[2]

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				secs := (retryMs + 999) / 1000
				h.Set("Retry-After", strconv.FormatInt(secs, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too many requests",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

// bucketKey derives the Redis key for this request's bucket.
func bucketKey(cfg config.RateLimitConfig, c echo.Context) string {
	parts := []string{cfg.Prefix}
	for _, dim := range strings.Split(cfg.KeyStrategy, "_") {
		switch dim {
		case "ip":
			parts = append(parts, c.RealIP())
		case "user":
			parts = append(parts, callerKey(c))
		case "route":
			parts = append(parts, c.Request().Method, c.Path())
		}
	}
	return strings.Join(parts, ":")
}
