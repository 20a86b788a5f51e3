package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scriptlab-backend/internal/config"
	"scriptlab-backend/internal/handlers"
	"scriptlab-backend/internal/middleware"
	"scriptlab-backend/internal/router"
	"scriptlab-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting ScriptLab Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")
	if cfg.GeminiAPIKey == "" {
		log.Println("! No GEMINI_API_KEY set; requests must supply their own key")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("! No OPENAI_API_KEY set; requests must supply their own key")
	}

	// ──── Step 2: Initialize Services ────
	youtubeService := services.NewYouTubeService()
	scraperService := services.NewScraperService(youtubeService)
	geminiService := services.NewGeminiService(cfg.GeminiAPIKey)
	openaiService := services.NewOpenAIService(cfg.OpenAIAPIKey)
	log.Println("✓ Pipeline services initialized")

	// ──── Step 3: Initialize Handler & Rate Limiter ────
	generateHandler := handlers.NewGenerateHandler(scraperService, geminiService, openaiService)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)
	log.Printf("✓ Rate limiter ready (%d req / %ds per client)", cfg.RateLimitRequests, cfg.RateLimitWindowSeconds)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(limiter, generateHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // the pipeline waits on two model calls
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ ScriptLab Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1/generate", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
