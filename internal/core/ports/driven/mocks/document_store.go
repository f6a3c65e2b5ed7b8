package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// MockDocumentStore is a mock implementation of DocumentStore for testing
type MockDocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]domain.Document
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		docs: make(map[string][]domain.Document),
	}
}

func (m *MockDocumentStore) Add(ctx context.Context, sessionID string, docs ...domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.docs[sessionID])+len(docs) > domain.MaxDocuments {
		return fmt.Errorf("%w: at most %d documents", domain.ErrCapacityExceeded, domain.MaxDocuments)
	}
	m.docs[sessionID] = append(m.docs[sessionID], docs...)
	return nil
}

func (m *MockDocumentStore) List(ctx context.Context, sessionID string) ([]domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Document, len(m.docs[sessionID]))
	copy(out, m.docs[sessionID])
	return out, nil
}

func (m *MockDocumentStore) Count(ctx context.Context, sessionID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs[sessionID]), nil
}

func (m *MockDocumentStore) Remove(ctx context.Context, sessionID string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.docs[sessionID]
	if index < 0 || index >= len(docs) {
		return nil
	}
	m.docs[sessionID] = append(docs[:index], docs[index+1:]...)
	return nil
}

func (m *MockDocumentStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, sessionID)
	return nil
}
