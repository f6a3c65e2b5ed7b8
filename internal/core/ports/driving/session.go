package driving

import (
	"context"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// UploadFile is one raw uploaded file before extraction.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadOutcome is the per-file result of an upload. Exactly one of Document
// and Err is set; a failed file never aborts its siblings.
type UploadOutcome struct {
	Filename string
	Document *domain.Document
	Err      error
}

// SessionService orchestrates user actions against the conversation and
// document stores and the completion client.
type SessionService interface {
	// Send appends the user turn, assembles the completion request from the
	// session's stores, performs the completion call, and appends the
	// resulting assistant or error turn. Completion failures come back as an
	// error turn, not an error; the returned error covers store failures only.
	Send(ctx context.Context, sessionID, message string) (domain.Turn, error)

	// Complete performs a stateless completion for a caller-supplied request
	// without touching any session state.
	Complete(ctx context.Context, req domain.CompletionRequest) (*domain.ChatResponse, error)

	// UploadDocuments extracts and stores each file as its own unit of work
	UploadDocuments(ctx context.Context, sessionID string, files []UploadFile) []UploadOutcome

	// History returns the session's persisted turn sequence
	History(ctx context.Context, sessionID string) ([]domain.Turn, error)

	// Documents returns the session's persisted document set
	Documents(ctx context.Context, sessionID string) ([]domain.Document, error)

	// RemoveDocument removes one document by position; out of bounds is a no-op
	RemoveDocument(ctx context.Context, sessionID string, index int) error

	// ClearConversation empties the conversation. Replies still in flight
	// for the cleared history are dropped when they arrive.
	ClearConversation(ctx context.Context, sessionID string) error

	// ClearDocuments empties the document set
	ClearDocuments(ctx context.Context, sessionID string) error

	// Source returns the model name reported with successful replies
	Source() string

	// ProviderConfigured reports whether the completion provider has credentials
	ProviderConfigured() bool
}
