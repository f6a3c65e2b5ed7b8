// Package memory provides in-memory store adapters used when no Redis URL
// is configured. State does not survive a process restart; the Redis
// adapters are the durable option.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/rezumai/rezum-core/internal/core/domain"
	"github.com/rezumai/rezum-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.ConversationStore = (*ConversationStore)(nil)
	_ driven.DocumentStore     = (*DocumentStore)(nil)
)

// ConversationStore implements driven.ConversationStore in process memory.
type ConversationStore struct {
	mu    sync.RWMutex
	turns map[string][]domain.Turn
}

// NewConversationStore creates a new in-memory ConversationStore
func NewConversationStore() *ConversationStore {
	return &ConversationStore{turns: make(map[string][]domain.Turn)}
}

func (s *ConversationStore) Append(ctx context.Context, sessionID string, turn domain.Turn) error {
	if !turn.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, turn.Role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}

func (s *ConversationStore) List(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Turn, len(s.turns[sessionID]))
	copy(out, s.turns[sessionID])
	return out, nil
}

func (s *ConversationStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, sessionID)
	return nil
}

// DocumentStore implements driven.DocumentStore in process memory.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]domain.Document
}

// NewDocumentStore creates a new in-memory DocumentStore
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string][]domain.Document)}
}

func (s *DocumentStore) Add(ctx context.Context, sessionID string, docs ...domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.docs[sessionID])+len(docs) > domain.MaxDocuments {
		return fmt.Errorf("%w: at most %d documents per session", domain.ErrCapacityExceeded, domain.MaxDocuments)
	}
	s.docs[sessionID] = append(s.docs[sessionID], docs...)
	return nil
}

func (s *DocumentStore) List(ctx context.Context, sessionID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, len(s.docs[sessionID]))
	copy(out, s.docs[sessionID])
	return out, nil
}

func (s *DocumentStore) Count(ctx context.Context, sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[sessionID]), nil
}

func (s *DocumentStore) Remove(ctx context.Context, sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.docs[sessionID]
	if index < 0 || index >= len(docs) {
		return nil
	}
	s.docs[sessionID] = append(docs[:index], docs[index+1:]...)
	return nil
}

func (s *DocumentStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, sessionID)
	return nil
}
