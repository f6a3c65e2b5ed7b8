package driven

import (
	"context"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// CompletionService performs exactly one request/response exchange with the
// upstream text-generation API per call. No retries, no streaming.
type CompletionService interface {
	// Complete sends the assembled request and returns the reply text.
	// Failures wrap domain.ErrUpstreamFailure (or domain.ErrNotConfigured)
	// with the underlying cause.
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)

	// Model returns the model name used, reported as the reply source
	Model() string

	// Configured reports whether the provider has the credentials it needs
	Configured() bool
}
