package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/Eliox00/Sistema-de-reservas/internal/config"     // Internal config loader
	"github.com/Eliox00/Sistema-de-reservas/internal/database"   // MySQL pool setup
	"github.com/Eliox00/Sistema-de-reservas/internal/handler"    // HTTP handlers
	"github.com/Eliox00/Sistema-de-reservas/internal/queue"      // Background event consumer
	"github.com/Eliox00/Sistema-de-reservas/internal/repository" // DB repositories
	"github.com/Eliox00/Sistema-de-reservas/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Redis backs the room-listing cache and the rate limiter.  A nil
	// client just disables both; the API stays fully functional.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiter disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Deps{
		Cfg:     cfg,
		Auth:    handler.NewAuthHandler(cfg, users, tokens),
		Rooms:   handler.NewRoomHandler(rooms, reservations),
		Resv:    handler.NewReservationHandler(rooms, reservations, users),
		Admin:   handler.NewAdminReservationHandler(rooms, reservations),
		Rdb:     rdb,
		CacheCf: config.LoadCacheConfig(),
		RateCf:  config.LoadRateLimitConfig(),
	})

	// The consumer tails the reservation queues and appends to the audit
	// log.  It reconnects on its own, so a broker outage never takes the
	// API down with it.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
