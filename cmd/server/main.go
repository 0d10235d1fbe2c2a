package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/adapters/primary/http/handlers"
	"github.com/TheRealHZL/MentalHealth-sub001/internal/adapters/primary/http/middleware"
	"github.com/TheRealHZL/MentalHealth-sub001/internal/adapters/secondary/fsstore"
	"github.com/TheRealHZL/MentalHealth-sub001/internal/adapters/secondary/intent"
	"github.com/TheRealHZL/MentalHealth-sub001/internal/adapters/secondary/postgres"
	"github.com/TheRealHZL/MentalHealth-sub001/internal/config"
	ports "github.com/TheRealHZL/MentalHealth-sub001/internal/core/ports/output"
	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Database pool (optional - the engine serves without it, feedback is
	// then dropped and health skips the database check)
	var pinger ports.Pinger
	var feedback ports.FeedbackSink
	if cfg.Database.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			log.Fatalf("parse db config: %v", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Warnf("db ping failed (continuing, health will report it): %v", err)
		} else {
			log.Info("database connection established")
		}

		pinger = postgres.NewPinger(pool)
		feedback = postgres.NewFeedbackSink(pool)
	} else {
		log.Info("database integration disabled")
	}

	// Secondary Adapters
	store, err := fsstore.New(cfg.Engine.ModelDir)
	if err != nil {
		log.Fatalf("create model store: %v", err)
	}
	trainer := intent.NewTrainer()

	// Core Services
	loader := services.NewLoader(store, cfg.Engine.LoadTimeout)
	coord := services.NewTrainingCoordinator(store, trainer)
	engine := services.NewEngine(store, loader, coord, feedback)
	healthSvc := services.NewHealthService(engine, pinger, cfg.Engine.HealthTimeout)

	// Load the latest model. A missing or broken artifact degrades the AI
	// feature but never stops the process.
	state := engine.Initialize(context.Background())
	log.WithField("engine_state", state).Info("engine initialized")

	// Primary Adapter (HTTP)
	h := handlers.New(engine, healthSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/engine")
	h.RegisterRoutes(api)

	router.GET("/healthz", h.Healthz)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	engine.Shutdown()

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
