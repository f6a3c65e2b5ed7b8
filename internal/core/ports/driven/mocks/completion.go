package mocks

import (
	"context"
	"errors"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// MockCompletionService is a mock implementation of CompletionService for testing
type MockCompletionService struct {
	CompleteFn   func(ctx context.Context, req domain.CompletionRequest) (string, error)
	ModelName    string
	Unconfigured bool

	// Requests records every assembled request passed to Complete
	Requests []domain.CompletionRequest
}

func (m *MockCompletionService) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	return "", errors.New("not implemented")
}

func (m *MockCompletionService) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

func (m *MockCompletionService) Configured() bool {
	return !m.Unconfigured
}

// MockTextExtractor is a mock implementation of TextExtractor for testing
type MockTextExtractor struct {
	ExtractFn func(ctx context.Context, filename string, data []byte) (string, error)
}

func (m *MockTextExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, filename, data)
	}
	return string(data), nil
}
