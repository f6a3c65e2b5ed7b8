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

// Ensure GeminiCompletion implements CompletionService
var _ driven.CompletionService = (*GeminiCompletion)(nil)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// GeminiCompletion implements CompletionService against the Gemini
// generateContent REST endpoint. One request per call, no retries.
type GeminiCompletion struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiCompletion creates a new Gemini completion client
func NewGeminiCompletion(apiKey, model, baseURL string) *GeminiCompletion {
	if model == "" {
		model = defaultGeminiModel
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiCompletion{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete performs one generateContent exchange. Every failure path wraps
// domain.ErrUpstreamFailure with the status/body or underlying cause so the
// caller can surface it verbatim.
func (g *GeminiCompletion) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY is not set", domain.ErrNotConfigured)
	}

	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, geminiContent{
			Role:  geminiRole(turn.Role),
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: userPrompt(req)}},
	})

	body, err := json.Marshal(geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrUpstreamFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s",
			domain.ErrUpstreamFailure, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrUpstreamFailure, err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: unexpected response format", domain.ErrUpstreamFailure)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// Model returns the model name, reported as the reply source.
func (g *GeminiCompletion) Model() string {
	return g.model
}

// Configured reports whether an API key is present.
func (g *GeminiCompletion) Configured() bool {
	return g.apiKey != ""
}

// geminiRole maps conversation roles onto the Gemini wire roles. Gemini
// knows only "user" and "model".
func geminiRole(r domain.Role) string {
	if r == domain.RoleAssistant {
		return "model"
	}
	return "user"
}

// userPrompt builds the final user content. When a document context is
// present it is prepended as its own block; an empty context is omitted
// entirely rather than sent as an empty string.
func userPrompt(req domain.CompletionRequest) string {
	if req.DocumentContext == "" {
		return req.Message
	}
	return req.DocumentContext + "\n\n" + req.Message
}
