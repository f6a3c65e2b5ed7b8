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
var _ driven.ConversationStore = (*ConversationStore)(nil)

const (
	// Key prefixes for Redis. Each session owns exactly two keys: one for
	// its turn sequence and one for its document set.
	conversationPrefix = "chat:conversation:"
	documentsPrefix    = "chat:documents:"
)

// ConversationStore implements driven.ConversationStore using Redis.
// The full ordered turn sequence is serialized under a single key so a
// later load reconstructs exactly what was last persisted.
type ConversationStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewConversationStore creates a new Redis-backed ConversationStore
func NewConversationStore(client *redis.Client, logger *slog.Logger) *ConversationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationStore{client: client, logger: logger}
}

// List restores the last-persisted turn sequence. A missing key is an empty
// conversation; corrupt data is discarded with a warning, never an error.
func (s *ConversationStore) List(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	data, err := s.client.Get(ctx, conversationPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Turn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	var turns []domain.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		s.logger.Warn("discarding corrupt conversation state", "session", sessionID, "error", err)
		return []domain.Turn{}, nil
	}

	// Unknown roles are dropped at the store boundary rather than
	// propagated as arbitrary strings.
	valid := turns[:0]
	for _, turn := range turns {
		if turn.Role.Valid() {
			valid = append(valid, turn)
		} else {
			s.logger.Warn("dropping turn with unknown role", "session", sessionID, "role", string(turn.Role))
		}
	}
	return valid, nil
}

// Append adds one turn to the end and synchronously persists the sequence.
func (s *ConversationStore) Append(ctx context.Context, sessionID string, turn domain.Turn) error {
	if !turn.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, turn.Role)
	}

	turns, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}
	turns = append(turns, turn)

	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	if err := s.client.Set(ctx, conversationPrefix+sessionID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// Clear removes the persisted key entirely.
func (s *ConversationStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, conversationPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}
