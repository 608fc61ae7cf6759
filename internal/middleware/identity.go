package middleware

// identity.go holds small helpers shared by the caching and rate limiting
// middleware. They key buckets and cache entries per authenticated user so
// one noisy caller cannot evict or exhaust another's.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// callerKey returns a stable identifier for the current caller. It prefers
// the user id injected by JWTAuth and falls back to the client IP for
// unauthenticated traffic.
func callerKey(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		// Numeric JWT subjects decode as float64 from MapClaims.
		return strconv.FormatInt(int64(v), 10)
	}
	return "ip:" + c.RealIP()
}
