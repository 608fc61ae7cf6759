package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/config"
	"github.com/dinebook/table-reservation/internal/database"
	"github.com/dinebook/table-reservation/internal/handler"
	"github.com/dinebook/table-reservation/internal/queue"
	"github.com/dinebook/table-reservation/internal/repository"
	"github.com/dinebook/table-reservation/internal/router"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	layouts := repository.NewLayoutRepo(db)
	menus := repository.NewMenuRepo(db)
	reservations := repository.NewReservationRepo(db)
	history := repository.NewHistoryRepo(db)
	orders := repository.NewOrderRepo(db)
	seats := repository.NewSeatCache(rdb, cacheCfg.TTL)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	owner := handler.NewOwnerHandler(restaurants, layouts, menus, reservations, history, orders, seats)
	customer := handler.NewCustomerHandler(restaurants, layouts, reservations, orders, seats)
	public := handler.NewPublicHandler(restaurants, menus)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, cacheCfg, rlCfg, rdb)
	router.RegisterOwner(e, owner, cfg.JWTSecret)
	router.RegisterCustomer(e, customer, cfg.JWTSecret)

	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	// Sweep expired refresh tokens daily so the table stays bounded.
	go func() {
		for {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := tokens.PurgeExpired(ctx, time.Now().UTC()); err != nil {
				log.Printf("token purge: %v", err)
			} else if n > 0 {
				log.Printf("token purge: removed %d expired tokens", n)
			}
			cancel()
			time.Sleep(24 * time.Hour)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
