package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rezumai/rezum-core/internal/core/domain"
	"github.com/rezumai/rezum-core/internal/core/ports/driven"
)

// Ensure OllamaCompletion implements CompletionService
var _ driven.CompletionService = (*OllamaCompletion)(nil)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.2"
)

// OllamaCompletion implements CompletionService against a local Ollama
// instance, for running without a Gemini API key.
type OllamaCompletion struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaCompletion creates a new Ollama completion client
func NewOllamaCompletion(baseURL, model string) *OllamaCompletion {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaCompletion{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete performs one generate exchange. Ollama has no multi-turn wire
// format on this endpoint, so history and document context are flattened
// into a single prompt.
func (o *OllamaCompletion) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: flattenPrompt(req),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s",
			domain.ErrUpstreamFailure, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrUpstreamFailure, err)
	}
	return parsed.Response, nil
}

// Model returns the model name, reported as the reply source.
func (o *OllamaCompletion) Model() string {
	return o.model
}

// Configured reports whether the client can be used; Ollama needs no key.
func (o *OllamaCompletion) Configured() bool {
	return true
}

func flattenPrompt(req domain.CompletionRequest) string {
	var b strings.Builder
	if req.DocumentContext != "" {
		b.WriteString(req.DocumentContext)
		b.WriteString("\n\n")
	}
	for _, turn := range req.History {
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString("User: ")
		case domain.RoleAssistant:
			b.WriteString("Assistant: ")
		}
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(req.Message)
	b.WriteString("\nAssistant:")
	return b.String()
}
