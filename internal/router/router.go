// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dinebook/table-reservation/internal/config"
	"github.com/dinebook/table-reservation/internal/handler"
	"github.com/dinebook/table-reservation/internal/middleware"
)

// RegisterRoutes registers unauthenticated infrastructure routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Register, login and the
// refresh exchanges are open; logout and /me require a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	open := e.Group("/v1/auth")
	open.POST("/register", a.Register)
	open.POST("/login", a.Login)
	open.POST("/refresh", a.Refresh)
	open.POST("/refresh-access", a.RefreshAccess)

	protected := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	protected.POST("/auth/logout", a.Logout)
	protected.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints. These
// are the hot read paths, so the Redis response cache and a rate
// limiter sit in front of them.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.RateLimit(rlCfg, rdb),
		middleware.ResponseCache(cacheCfg, rdb),
	)
	g.GET("/restaurants", p.ListRestaurants)
	g.GET("/restaurants/:id", p.GetRestaurant)
	g.GET("/restaurants/:id/menu", p.GetMenu)
}
