package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCapacityExceeded indicates the document store is at its maximum size
	ErrCapacityExceeded = errors.New("document capacity exceeded")

	// ErrUnsupportedFileType indicates the uploaded file is not a supported document type
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrExtractionFailed indicates text could not be extracted from an uploaded file
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrUpstreamFailure indicates the completion call to the model API failed
	ErrUpstreamFailure = errors.New("upstream completion failed")

	// ErrNotConfigured indicates the completion provider is missing its credentials
	ErrNotConfigured = errors.New("provider not configured")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")
)
