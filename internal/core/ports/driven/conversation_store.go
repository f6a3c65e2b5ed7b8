package driven

import (
	"context"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// ConversationStore persists the ordered turn sequence for a session (Redis).
// Each session owns one key; an absent key is an empty conversation, and
// persisted data that fails to parse is treated as empty, never as an error.
type ConversationStore interface {
	// Append adds one turn to the end and persists the full sequence
	Append(ctx context.Context, sessionID string, turn domain.Turn) error

	// List restores the last-persisted sequence, oldest first
	List(ctx context.Context, sessionID string) ([]domain.Turn, error)

	// Clear empties the sequence and removes the persisted key
	Clear(ctx context.Context, sessionID string) error
}
