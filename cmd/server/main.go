package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-directory/internal/config"
	"github.com/iliyamo/booking-directory/internal/database"
	"github.com/iliyamo/booking-directory/internal/handler"
	"github.com/iliyamo/booking-directory/internal/middleware"
	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/repository"
	"github.com/iliyamo/booking-directory/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	home := &handler.HomeHandler{VenueRepo: venueRepo, ArtistRepo: artistRepo, ShowRepo: showRepo}
	venues := &handler.VenueHandler{VenueRepo: venueRepo, ShowRepo: showRepo}
	artists := &handler.ArtistHandler{ArtistRepo: artistRepo, ShowRepo: showRepo}
	shows := &handler.ShowHandler{ShowRepo: showRepo}

	// Redis backs the browse cache and the rate limiter; both become
	// pass-throughs when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	browseCache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterDirectory(e, home, venues, artists, shows, browseCache)

	// Record listing activity events in the background; the loop reconnects
	// on broker failures and never takes the server down.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
