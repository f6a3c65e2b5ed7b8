package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/rezumai/rezum-core/internal/core/domain"
	"github.com/rezumai/rezum-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using Redis.
type DocumentStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewDocumentStore creates a new Redis-backed DocumentStore
func NewDocumentStore(client *redis.Client, logger *slog.Logger) *DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStore{client: client, logger: logger}
}

// List restores the persisted ordered document set. A missing key is an
// empty set; corrupt data is discarded with a warning.
func (s *DocumentStore) List(ctx context.Context, sessionID string) ([]domain.Document, error) {
	data, err := s.client.Get(ctx, documentsPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		s.logger.Warn("discarding corrupt document state", "session", sessionID, "error", err)
		return []domain.Document{}, nil
	}
	return docs, nil
}

// Count returns the current document count for a session.
func (s *DocumentStore) Count(ctx context.Context, sessionID string) (int, error) {
	docs, err := s.List(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// Add appends documents in order and persists. The capacity check runs
// before any mutation so a rejected add leaves the store untouched.
func (s *DocumentStore) Add(ctx context.Context, sessionID string, docs ...domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	existing, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(existing)+len(docs) > domain.MaxDocuments {
		return fmt.Errorf("%w: at most %d documents per session", domain.ErrCapacityExceeded, domain.MaxDocuments)
	}

	return s.persist(ctx, sessionID, append(existing, docs...))
}

// Remove deletes the document at the given position and re-persists.
// An out-of-bounds index is an explicit no-op.
func (s *DocumentStore) Remove(ctx context.Context, sessionID string, index int) error {
	docs, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(docs) {
		return nil
	}
	return s.persist(ctx, sessionID, append(docs[:index], docs[index+1:]...))
}

// Clear removes the persisted key entirely.
func (s *DocumentStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, documentsPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	return nil
}

func (s *DocumentStore) persist(ctx context.Context, sessionID string, docs []domain.Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	if err := s.client.Set(ctx, documentsPrefix+sessionID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save documents: %w", err)
	}
	return nil
}
