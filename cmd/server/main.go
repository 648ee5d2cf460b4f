package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/router"
	"portfolio-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Portfolio Generator Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Printf("✓ Environment variables loaded (env: %s)", cfg.Env)
	if cfg.TrustProxyHeaders {
		log.Println("✓ Trusting X-Forwarded-For / X-Real-IP for client addresses")
	}

	// ──── Step 2: Initialize Rate Limiter ────
	var redisClient *redis.Client
	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMin > 0 {
		if cfg.RedisURL != "" {
			client, err := database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				log.Fatalf("✗ Redis connection failed: %v", err)
			}
			redisClient = client
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimitPerMin, time.Minute)
			log.Printf("✓ Rate limiter started (%d req/min per IP, Redis)", cfg.RateLimitPerMin)
		} else {
			limiter = middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
			log.Printf("✓ Rate limiter started (%d req/min per IP, in-memory)", cfg.RateLimitPerMin)
		}
	}

	// ──── Step 3: Initialize Gemini Service ────
	geminiService := services.NewGeminiService(cfg.GeminiModel, cfg.GeminiConcurrentReqs)
	log.Printf("✓ Gemini service ready (model %s)", geminiService.ModelName())
	if !cfg.HasGeminiKey() {
		log.Println("⚠️  GEMINI_API_KEY not set: /api/assist will serve fallback responses")
	}

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(geminiService)
	portfolioHandler := handlers.NewPortfolioHandler(geminiService)
	assistHandler := handlers.NewAssistHandler(geminiService, cfg.GeminiAPIKey)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(
		chatHandler,
		portfolioHandler,
		assistHandler,
		limiter,
		cfg.FrontendURL,
		cfg.TrustProxyHeaders,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Portfolio Generator Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Health check: http://localhost:%s/api/health", cfg.Port)

	cleanup := func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}
	if err := serve(server, shutdownDone, cleanup); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// serve runs the server until it fails or a graceful shutdown finishes, then
// releases shared connections. It returns nil after a graceful shutdown.
func serve(server *http.Server, shutdownDone <-chan struct{}, cleanup func()) error {
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-shutdownDone
		err = nil
	}
	cleanup()
	return err
}
