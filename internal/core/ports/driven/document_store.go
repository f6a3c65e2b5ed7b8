package driven

import (
	"context"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// DocumentStore persists the ordered document set for a session (Redis).
// The store holds at most domain.MaxDocuments documents per session.
type DocumentStore interface {
	// Add appends documents in order and persists. Returns
	// domain.ErrCapacityExceeded, with zero side effects, if the adds
	// would push the session past the cap.
	Add(ctx context.Context, sessionID string, docs ...domain.Document) error

	// List restores the persisted ordered set for a session
	List(ctx context.Context, sessionID string) ([]domain.Document, error)

	// Count returns the current document count for a session
	Count(ctx context.Context, sessionID string) (int, error)

	// Remove deletes the document at the given position and re-persists.
	// An out-of-bounds index is a no-op.
	Remove(ctx context.Context, sessionID string, index int) error

	// Clear empties the set and removes the persisted key
	Clear(ctx context.Context, sessionID string) error
}
