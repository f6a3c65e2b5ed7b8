package mocks

import (
	"context"
	"sync"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// MockConversationStore is a mock implementation of ConversationStore for testing
type MockConversationStore struct {
	mu    sync.RWMutex
	turns map[string][]domain.Turn

	// AppendErr, when set, is returned by Append
	AppendErr error
}

// NewMockConversationStore creates a new MockConversationStore
func NewMockConversationStore() *MockConversationStore {
	return &MockConversationStore{
		turns: make(map[string][]domain.Turn),
	}
}

func (m *MockConversationStore) Append(ctx context.Context, sessionID string, turn domain.Turn) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[sessionID] = append(m.turns[sessionID], turn)
	return nil
}

func (m *MockConversationStore) List(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Turn, len(m.turns[sessionID]))
	copy(out, m.turns[sessionID])
	return out, nil
}

func (m *MockConversationStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turns, sessionID)
	return nil
}
