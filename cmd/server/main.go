package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/airnest/listing-reservation/internal/config"
    "github.com/airnest/listing-reservation/internal/database"
    "github.com/airnest/listing-reservation/internal/handler"
    "github.com/airnest/listing-reservation/internal/middleware"
    "github.com/airnest/listing-reservation/internal/queue"
    "github.com/airnest/listing-reservation/internal/repository"
    "github.com/airnest/listing-reservation/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: a nil client disables caching and rate limiting.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; cache and rate limiting disabled")
    }

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    listings := repository.NewListingRepo(db)
    bookings := repository.NewBookingRepo(db)
    reviews := repository.NewReviewRepo(db)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    publicH := handler.NewPublicHandler(listings, bookings, reviews)
    guestH := handler.NewGuestHandler(listings, bookings, users)
    hostH := handler.NewHostHandler(listings, bookings)
    reviewH := handler.NewReviewHandler(bookings, listings, reviews)

    e := echo.New()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH, reviewH, cacheMW)
    router.RegisterGuest(e, guestH, reviewH, cfg.JWTSecret)
    router.RegisterHost(e, hostH, reviewH, cfg.JWTSecret)

    // Drain booking events in the background; the consumer reconnects
    // on its own if the broker goes away.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
