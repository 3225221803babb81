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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sitegen_server/config"
	"sitegen_server/internal/api"
	"sitegen_server/internal/app"
	"sitegen_server/internal/webhook"
)

func main() {
	// --- Load .env file ---
	// Must happen before viper reads the environment.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Dependency Initialization ---
	pipe, stats, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		log.Fatalf("Cannot create pipeline: %v", err)
	}

	siteStore, closeStore, err := app.NewStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Cannot open configuration store: %v", err)
	}
	defer closeStore()

	replay, err := webhook.NewReplayGuard(cfg.ReplayWindow, 0)
	if err != nil {
		log.Fatalf("Cannot create replay guard: %v", err)
	}

	apiHandler := api.NewAPIHandler(api.Deps{
		Pipeline:        pipe,
		Stats:           stats,
		Store:           siteStore,
		SanitizeOptions: app.SanitizeOptions(cfg),
		SanitizeIngest:  cfg.Sanitize,
		WebhookSecret:   cfg.WebhookSecret,
		Replay:          replay,
		MaxFeatures:     cfg.MaxFeatures,
	})

	// Start API Server
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Generation may wait on a model or the remote service.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	// Stop anything started with the application context.
	cancel()

	log.Println("Shutting down API server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
