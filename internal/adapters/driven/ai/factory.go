package ai

import (
	"fmt"

	"github.com/rezumai/rezum-core/internal/core/domain"
	"github.com/rezumai/rezum-core/internal/core/ports/driven"
)

// Config holds completion provider configuration
type Config struct {
	Provider string // "gemini" (default) or "ollama"
	APIKey   string
	Model    string
	BaseURL  string
}

// NewCompletionService creates a completion client for the configured provider
func NewCompletionService(cfg Config) (driven.CompletionService, error) {
	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiCompletion(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "ollama":
		return NewOllamaCompletion(cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, cfg.Provider)
	}
}
