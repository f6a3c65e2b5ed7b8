package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezumai/rezum-core/internal/core/ports/driving"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	sessionService driving.SessionService
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
	Logger  *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8000,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, sessionService driving.SessionService) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		logger:         logger,
		sessionService: sessionService,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      corsMiddleware(requestLogger(logger, s.router)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoint
	s.router.HandleFunc("GET /health", s.handleHealth)

	// Chat endpoints
	s.router.HandleFunc("POST /chat", s.handleChat)
	s.router.HandleFunc("GET /conversation", s.handleGetConversation)
	s.router.HandleFunc("DELETE /conversation", s.handleClearConversation)

	// Document endpoints
	s.router.HandleFunc("POST /upload-pdf", s.handleUploadPDF)
	s.router.HandleFunc("POST /upload-pdfs-batch", s.handleUploadPDFBatch)
	s.router.HandleFunc("GET /documents", s.handleListDocuments)
	s.router.HandleFunc("DELETE /documents", s.handleClearDocuments)
	s.router.HandleFunc("DELETE /documents/{index}", s.handleRemoveDocument)
}

// Handler returns the fully wrapped handler, primarily for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
