package driven

import "context"

// TextExtractor converts an uploaded file to plain text.
type TextExtractor interface {
	// Extract returns the plain-text content of the file. Non-PDF input
	// fails with domain.ErrUnsupportedFileType; a file that cannot be
	// parsed fails with domain.ErrExtractionFailed.
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
