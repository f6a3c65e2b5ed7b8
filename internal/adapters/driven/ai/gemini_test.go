package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

func geminiSuccessBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGeminiCompletion_Success(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/gemini-1.5-flash:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key query parameter, got %q", r.URL.Query().Get("key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiSuccessBody("Hi!")))
	}))
	defer server.Close()

	client := NewGeminiCompletion("test-key", "", server.URL)

	reply, err := client.Complete(context.Background(), domain.CompletionRequest{
		Message: "Hello",
		History: []domain.Turn{
			domain.UserTurn("earlier question"),
			domain.AssistantTurn("earlier answer"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Hi!" {
		t.Errorf("expected reply %q, got %q", "Hi!", reply)
	}

	// History turns plus the current message, with assistant mapped to
	// Gemini's "model" role.
	if len(captured.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(captured.Contents))
	}
	if captured.Contents[0].Role != "user" || captured.Contents[0].Parts[0].Text != "earlier question" {
		t.Errorf("unexpected first content: %+v", captured.Contents[0])
	}
	if captured.Contents[1].Role != "model" {
		t.Errorf("assistant turn must map to role model, got %q", captured.Contents[1].Role)
	}
	if captured.Contents[2].Role != "user" || captured.Contents[2].Parts[0].Text != "Hello" {
		t.Errorf("unexpected final content: %+v", captured.Contents[2])
	}

	cfg := captured.GenerationConfig
	if cfg.Temperature != 0.7 || cfg.TopK != 40 || cfg.TopP != 0.95 || cfg.MaxOutputTokens != 2048 {
		t.Errorf("unexpected generation config: %+v", cfg)
	}
}

func TestGeminiCompletion_DocumentContextPrepended(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(geminiSuccessBody("ok")))
	}))
	defer server.Close()

	client := NewGeminiCompletion("test-key", "", server.URL)

	_, err := client.Complete(context.Background(), domain.CompletionRequest{
		Message:         "What does it say?",
		DocumentContext: "=== Document 1: A.pdf ===\ntextA",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := captured.Contents[len(captured.Contents)-1].Parts[0].Text
	want := "=== Document 1: A.pdf ===\ntextA\n\nWhat does it say?"
	if got != want {
		t.Errorf("expected prompt %q, got %q", want, got)
	}
}

func TestGeminiCompletion_NoContextSendsBareMessage(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(geminiSuccessBody("ok")))
	}))
	defer server.Close()

	client := NewGeminiCompletion("test-key", "", server.URL)

	_, err := client.Complete(context.Background(), domain.CompletionRequest{Message: "Hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := captured.Contents[0].Parts[0].Text
	if got != "Hello" {
		t.Errorf("empty document context must not alter the message, got %q", got)
	}
}

func TestGeminiCompletion_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewGeminiCompletion("test-key", "", server.URL)

	_, err := client.Complete(context.Background(), domain.CompletionRequest{Message: "Hello"})
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("expected ErrUpstreamFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error must include the status code, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error must include the response body, got %q", err.Error())
	}
}

func TestGeminiCompletion_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewGeminiCompletion("test-key", "", server.URL)

	_, err := client.Complete(context.Background(), domain.CompletionRequest{Message: "Hello"})
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("expected ErrUpstreamFailure, got %v", err)
	}
}

func TestGeminiCompletion_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewGeminiCompletion("test-key", "", server.URL)

	_, err := client.Complete(context.Background(), domain.CompletionRequest{Message: "Hello"})
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("expected ErrUpstreamFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "unexpected response format") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestGeminiCompletion_NotConfigured(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewGeminiCompletion("", "", server.URL)

	if client.Configured() {
		t.Error("expected Configured to be false without an API key")
	}
	_, err := client.Complete(context.Background(), domain.CompletionRequest{Message: "Hello"})
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if called {
		t.Error("unconfigured client must not make an HTTP call")
	}
}

func TestGeminiCompletion_Defaults(t *testing.T) {
	client := NewGeminiCompletion("key", "", "")
	if client.Model() != "gemini-1.5-flash" {
		t.Errorf("unexpected default model: %s", client.Model())
	}
	if client.baseURL != defaultGeminiBaseURL {
		t.Errorf("unexpected default base URL: %s", client.baseURL)
	}
}
