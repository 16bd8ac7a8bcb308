package mocks

import (
	"context"
	"sync"

	"tasweeq/internal/llm/client"
)

type ContentModelMock struct {
	GenerateTextFunc func(ctx context.Context, req client.ContentRequest) (string, error)

	mu       sync.Mutex
	requests []client.ContentRequest
}

func (m *ContentModelMock) GenerateText(ctx context.Context, req client.ContentRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, req)
	}
	return "", nil
}

func (m *ContentModelMock) Requests() []client.ContentRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]client.ContentRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
