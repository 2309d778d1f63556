package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/wanderlust/listings/internal/authz"
	"github.com/wanderlust/listings/internal/config"
	"github.com/wanderlust/listings/internal/database"
	"github.com/wanderlust/listings/internal/queue"
	"github.com/wanderlust/listings/internal/repository"
	"github.com/wanderlust/listings/internal/router"
	"github.com/wanderlust/listings/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	sqlDB, err := database.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer sqlDB.Close()

	mongoClient, err := database.OpenMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()
	docs := mongoClient.Database(cfg.MongoDB)

	var sessions session.Store
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, "sess")
	} else {
		log.Printf("redis unavailable: using in-memory sessions, rate limiting disabled")
		sessions = session.NewMemoryStore()
	}

	policy, err := authz.New(context.Background())
	if err != nil {
		log.Fatalf("authz: %v", err)
	}

	events := queue.NewPublisher(cfg.AMQPURL)
	defer func() {
		if err := events.Close(); err != nil {
			log.Printf("rabbitmq close: %v", err)
		}
	}()

	e, err := router.New(router.Deps{
		Listings:      repository.NewListingRepo(docs),
		Reviews:       repository.NewReviewRepo(docs),
		Bookings:      repository.NewBookingRepo(docs),
		Users:         repository.NewUserRepo(sqlDB),
		Events:        events,
		Sessions:      sessions,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    time.Duration(cfg.SessionTTLDays) * 24 * time.Hour,
		SecureCookie:  cfg.Env == "prod",
		Policy:        policy,
		RateLimit:     config.LoadRateLimitConfig(),
		Redis:         rdb,
		BcryptCost:    cfg.BcryptCost,
		AccessLog:     true,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:           addr,
		Handler:        c.Handler(e),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
