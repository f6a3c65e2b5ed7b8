package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rezumai/rezum-core/internal/core/domain"
	"github.com/rezumai/rezum-core/internal/core/ports/driven"
	"github.com/rezumai/rezum-core/internal/core/ports/driving"
)

// Ensure sessionService implements SessionService
var _ driving.SessionService = (*sessionService)(nil)

// sessionService implements the SessionService interface
type sessionService struct {
	conversations driven.ConversationStore
	documents     driven.DocumentStore
	completion    driven.CompletionService
	extractor     driven.TextExtractor
	logger        *slog.Logger

	// generations correlates in-flight sends with the conversation they
	// were issued against. ClearConversation bumps the counter; a reply
	// arriving for a stale generation is dropped instead of appending
	// onto the cleared history.
	mu          sync.Mutex
	generations map[string]uint64
}

// SessionConfig holds the dependencies for a SessionService
type SessionConfig struct {
	Conversations driven.ConversationStore
	Documents     driven.DocumentStore
	Completion    driven.CompletionService
	Extractor     driven.TextExtractor
	Logger        *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(cfg SessionConfig) driving.SessionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionService{
		conversations: cfg.Conversations,
		documents:     cfg.Documents,
		completion:    cfg.Completion,
		extractor:     cfg.Extractor,
		logger:        logger,
		generations:   make(map[string]uint64),
	}
}

// Send handles one user turn. The user turn is appended before the network
// call starts so it is never lost to an upstream failure; the completion
// result, success or error, is appended as exactly one further turn.
func (s *sessionService) Send(ctx context.Context, sessionID, message string) (domain.Turn, error) {
	if strings.TrimSpace(message) == "" {
		return domain.Turn{}, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	history, err := s.conversations.List(ctx, sessionID)
	if err != nil {
		return domain.Turn{}, err
	}

	gen := s.generation(sessionID)

	if err := s.conversations.Append(ctx, sessionID, domain.UserTurn(message)); err != nil {
		return domain.Turn{}, err
	}

	docs, err := s.documents.List(ctx, sessionID)
	if err != nil {
		return domain.Turn{}, err
	}

	req := BuildCompletionRequest(history, message, docs)

	var turn domain.Turn
	reply, err := s.completion.Complete(ctx, req)
	if err != nil {
		s.logger.Warn("completion failed", "session", sessionID, "error", err)
		turn = domain.ErrorTurn(fmt.Sprintf("Error processing chat: %v", err))
	} else {
		turn = domain.AssistantTurn(reply)
	}

	if s.generation(sessionID) != gen {
		s.logger.Info("conversation cleared mid-flight, dropping reply", "session", sessionID)
		return turn, nil
	}

	if err := s.conversations.Append(ctx, sessionID, turn); err != nil {
		return turn, err
	}
	return turn, nil
}

// Complete performs a stateless completion without touching session state.
func (s *sessionService) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.ChatResponse, error) {
	reply, err := s.completion.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return &domain.ChatResponse{Reply: reply, Source: s.completion.Model()}, nil
}

// UploadDocuments handles each file as its own unit of work: a rejected or
// failed file never aborts its siblings or disturbs already-stored documents.
func (s *sessionService) UploadDocuments(ctx context.Context, sessionID string, files []driving.UploadFile) []driving.UploadOutcome {
	outcomes := make([]driving.UploadOutcome, 0, len(files))
	for _, file := range files {
		doc, err := s.uploadOne(ctx, sessionID, file)
		if err != nil {
			s.logger.Warn("upload rejected", "session", sessionID, "file", file.Name, "error", err)
		}
		outcomes = append(outcomes, driving.UploadOutcome{
			Filename: file.Name,
			Document: doc,
			Err:      err,
		})
	}
	return outcomes
}

func (s *sessionService) uploadOne(ctx context.Context, sessionID string, file driving.UploadFile) (*domain.Document, error) {
	// Capacity is checked before extraction so an oversized batch fails
	// fast with no partial work.
	count, err := s.documents.Count(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxDocuments {
		return nil, fmt.Errorf("%w: at most %d documents per session", domain.ErrCapacityExceeded, domain.MaxDocuments)
	}

	text, err := s.extractor.Extract(ctx, file.Name, file.Data)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		Name: file.Name,
		Text: text,
		Size: int64(len(file.Data)),
	}
	if err := s.documents.Add(ctx, sessionID, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// History returns the session's persisted turn sequence.
func (s *sessionService) History(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	return s.conversations.List(ctx, sessionID)
}

// Documents returns the session's persisted document set.
func (s *sessionService) Documents(ctx context.Context, sessionID string) ([]domain.Document, error) {
	return s.documents.List(ctx, sessionID)
}

// RemoveDocument removes one document by position.
func (s *sessionService) RemoveDocument(ctx context.Context, sessionID string, index int) error {
	return s.documents.Remove(ctx, sessionID, index)
}

// ClearConversation empties the conversation and invalidates in-flight sends.
func (s *sessionService) ClearConversation(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	s.generations[sessionID]++
	s.mu.Unlock()
	return s.conversations.Clear(ctx, sessionID)
}

// ClearDocuments empties the document set.
func (s *sessionService) ClearDocuments(ctx context.Context, sessionID string) error {
	return s.documents.Clear(ctx, sessionID)
}

// Source returns the model name reported with successful replies.
func (s *sessionService) Source() string {
	return s.completion.Model()
}

// ProviderConfigured reports whether the completion provider has credentials.
func (s *sessionService) ProviderConfigured() bool {
	return s.completion.Configured()
}

func (s *sessionService) generation(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[sessionID]
}
