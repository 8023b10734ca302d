package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/plantsy-golang/internal/cache"
	"github.com/01moynul/plantsy-golang/internal/config"
	"github.com/01moynul/plantsy-golang/internal/database"
	"github.com/01moynul/plantsy-golang/internal/handlers"
	"github.com/01moynul/plantsy-golang/internal/routes"
	"github.com/01moynul/plantsy-golang/internal/store"
	"github.com/gin-gonic/gin"
)

const serviceName = "plantsy-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 0. --- Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database Connection ---
	db, dialect, err := database.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to %s database: %v", cfg.Database.Driver, err)
	}
	defer db.Close()

	// 2. --- Plant Store (optionally behind redis) ---
	var plants store.PlantStore = store.NewSQLPlantStore(db, dialect)
	if cfg.Cache.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		plants = cache.NewCachedPlantStore(plants, rdb, cfg.Cache.TTL)
		log.Printf("Plant cache enabled (ttl=%s)", cfg.Cache.TTL)
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Plants:         plants,
		DB:             db,
		DefaultInStock: cfg.App.DefaultInStock,
		UploadDir:      cfg.Server.UploadDir,
		BaseURL:        cfg.Server.BaseURL,
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.Server)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// --- Start Server ---
	go func() {
		log.Printf("Starting Plantsy API server on %s (db=%s)...", srv.Addr, dialect.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
