package main

// @title           Rezum Core API
// @version         1.0
// @description     Chat backend for resume review. Accepts chat messages and PDF uploads, assembles document context, and relays completions to Google Gemini.

// @contact.name   Rezum AI
// @contact.url    https://github.com/rezumai/rezum-core/issues

// @host      localhost:8000
// @BasePath  /
// @schemes   http https

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rezumai/rezum-core/internal/adapters/driven/ai"
	"github.com/rezumai/rezum-core/internal/adapters/driven/memory"
	"github.com/rezumai/rezum-core/internal/adapters/driven/pdf"
	redisadapter "github.com/rezumai/rezum-core/internal/adapters/driven/redis"
	"github.com/rezumai/rezum-core/internal/adapters/driving/http"
	"github.com/rezumai/rezum-core/internal/core/ports/driven"
	"github.com/rezumai/rezum-core/internal/core/services"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	log.Printf("rezum-core %s starting", version)

	// Configuration from environment
	port := getEnvInt("PORT", 8000)
	host := getEnv("HOST", "0.0.0.0")
	redisURL := getEnv("REDIS_URL", "")

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// ===== Session stores (Redis if available, otherwise in-memory) =====
	var conversations driven.ConversationStore
	var documents driven.DocumentStore
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		conversations = redisadapter.NewConversationStore(redisClient, logger)
		documents = redisadapter.NewDocumentStore(redisClient, logger)
		log.Println("Using Redis session stores")
	} else {
		conversations = memory.NewConversationStore()
		documents = memory.NewDocumentStore()
		log.Println("Using in-memory session stores")
	}

	// ===== Completion provider =====
	completion, err := ai.NewCompletionService(ai.Config{
		Provider: getEnv("AI_PROVIDER", "gemini"),
		APIKey:   getEnv("GEMINI_API_KEY", ""),
		Model:    getEnv("AI_MODEL", ""),
		BaseURL:  getEnv("AI_BASE_URL", ""),
	})
	if err != nil {
		log.Fatalf("Failed to create completion provider: %v", err)
	}
	if !completion.Configured() {
		log.Println("Warning: completion provider has no credentials, /chat will fail until GEMINI_API_KEY is set")
	}
	log.Printf("Completion provider ready (model=%s)", completion.Model())

	// ===== Core service =====
	sessionService := services.NewSessionService(services.SessionConfig{
		Conversations: conversations,
		Documents:     documents,
		Completion:    completion,
		Extractor:     pdf.NewExtractor(),
		Logger:        logger,
	})

	// ===== HTTP server =====
	server := http.NewServer(http.Config{
		Host:    host,
		Port:    port,
		Version: version,
		Logger:  logger,
	}, sessionService)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
