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

	"devhub/booking"
	"devhub/config"
	"devhub/db"
	"devhub/events"
	"devhub/home"
	"devhub/logger"
	"devhub/middleware"
	"devhub/mq"
	"devhub/ratelim"
	"devhub/rdx"
	"devhub/routes"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	manager, err := db.NewManager(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		zlog.Fatal("mongo manager", zap.Error(err))
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	database, err := manager.Database(startCtx)
	if err != nil {
		cancel()
		zlog.Fatal("connect to mongo", zap.Error(err))
	}
	if err := db.EnsureCollections(startCtx, database, events.Collection(), booking.Collection()); err != nil {
		cancel()
		zlog.Fatal("prepare collections", zap.Error(err))
	}

	var emitter mq.Emitter = mq.Nop{}
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = rdx.Connect(startCtx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			zlog.Warn("redis unavailable; change notifications disabled", zap.Error(err))
		} else {
			emitter = mq.NewRedisEmitter(redisClient, zlog)
		}
	}
	cancel()

	eventStore := events.NewMongoStore(database.Collection(events.CollectionName))
	eventSvc := events.NewService(eventStore, emitter, zlog)
	bookingSvc := booking.NewService(
		booking.NewMongoStore(database.Collection(booking.CollectionName)),
		eventStore, emitter, zlog,
	)

	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopSweep := make(chan struct{})
	go rateLimiter.Run(time.Minute, stopSweep)

	router := routes.New(routes.Deps{
		Home:        home.NewHandler(eventSvc, cfg.FeaturedLimit, zlog),
		Events:      events.NewHandlers(eventSvc, zlog),
		Bookings:    booking.NewHandlers(bookingSvc, eventSvc, zlog),
		RateLimiter: rateLimiter,
	})

	// apply middleware: recover → request id → logging → security headers → CORS → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"}, // lock down in production
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(router)

	handler := middleware.Chain(corsHandler,
		middleware.Recover(zlog),
		middleware.RequestID,
		middleware.Logger(zlog),
		middleware.SecurityHeaders,
	)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		close(stopSweep)
	})

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zlog.Info("shutdown signal received; shutting down gracefully")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zlog.Warn("close redis", zap.Error(err))
		}
	}
	if err := manager.Close(ctx); err != nil {
		zlog.Warn("close mongo", zap.Error(err))
	}

	zlog.Info("server stopped cleanly")
}
