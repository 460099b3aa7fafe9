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

	"rizzlet-backend/internal/ai"
	"rizzlet-backend/internal/api"
	"rizzlet-backend/internal/config"
	"rizzlet-backend/internal/handlers"
	"rizzlet-backend/internal/services"
	"rizzlet-backend/internal/store/postgres"
	"rizzlet-backend/internal/usage"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting Rizzlet Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Registry, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	// --- Initialize Provider Registry ---
	// A missing credential disables the provider; the dispatcher skips
	// unregistered providers rather than failing the chain outright.
	providerRegistry := ai.NewRegistry()
	if cfg.GeminiAPIKey != "" {
		providerRegistry.Register(ai.ProviderGemini, ai.NewGeminiClient(cfg.GeminiAPIKey))
	}
	if cfg.GroqAPIKey != "" {
		providerRegistry.Register(ai.ProviderGroq, ai.NewGroqClient(cfg.GroqAPIKey))
	}
	log.Println("ProviderRegistry initialized and populated.")

	dispatcher := ai.NewDispatcher(providerRegistry, ai.DefaultTextPriority, ai.DefaultVisionPriority)
	aiService := ai.NewService(dispatcher)
	log.Println("AI dispatcher and service initialized.")

	// --- Initialize Services ---
	authService := services.NewAuthService(pgStore, cfg)
	log.Println("AuthService initialized.")
	usageService := usage.NewService(pgStore, cfg.DailyLimit, cfg.MonthlyLimit)
	log.Println("UsageService initialized.")
	replyService := services.NewReplyService(aiService, usageService)
	log.Println("ReplyService initialized.")

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	replyHandler := handlers.NewReplyHandlers(replyService)
	ocrHandler := handlers.NewOCRHandlers(replyService)
	usageHandler := handlers.NewUsageHandlers(usageService)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		AuthHandler:  authHandler,
		ReplyHandler: replyHandler,
		OCRHandler:   ocrHandler,
		UsageHandler: usageHandler,
		Config:       cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks.
		// WriteTimeout must cover a full provider fallback chain.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Run server in a goroutine so it doesn't block
	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
		log.Fatal("Forcing shutdown due to error.")
	}

	log.Println("Server shutdown complete.")
}
