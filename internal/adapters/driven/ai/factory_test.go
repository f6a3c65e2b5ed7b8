package ai

import (
	"errors"
	"testing"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

func TestNewCompletionService(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  bool
		wantType string
	}{
		{"default is gemini", Config{APIKey: "k"}, false, "gemini-1.5-flash"},
		{"explicit gemini", Config{Provider: "gemini", APIKey: "k", Model: "gemini-1.5-pro"}, false, "gemini-1.5-pro"},
		{"ollama", Config{Provider: "ollama"}, false, "llama3.2"},
		{"unknown provider", Config{Provider: "watson"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewCompletionService(tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidProvider) {
					t.Fatalf("expected ErrInvalidProvider, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.Model() != tt.wantType {
				t.Errorf("expected model %s, got %s", tt.wantType, svc.Model())
			}
		})
	}
}
