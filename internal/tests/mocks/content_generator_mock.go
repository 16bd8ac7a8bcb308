package mocks

import (
	"context"
	"sync"

	"tasweeq/internal/models"
)

type ContentGeneratorMock struct {
	GenerateFunc func(ctx context.Context, input models.GenerationInput) (*models.GenerationOutput, error)

	mu    sync.Mutex
	calls []models.GenerationInput
}

func (m *ContentGeneratorMock) Generate(ctx context.Context, input models.GenerationInput) (*models.GenerationOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, input)
	}
	return &models.GenerationOutput{}, nil
}

func (m *ContentGeneratorMock) Calls() []models.GenerationInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.GenerationInput, len(m.calls))
	copy(out, m.calls)
	return out
}

type CredentialGateMock struct {
	mu    sync.Mutex
	Ready bool
}

func (m *CredentialGateMock) KeyReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Ready
}

func (m *CredentialGateMock) SetReady(ready bool) {
	m.mu.Lock()
	m.Ready = ready
	m.mu.Unlock()
}

type DraftStoreMock struct {
	SaveDraftFunc func(input models.GenerationInput) error

	mu     sync.Mutex
	Drafts []models.GenerationInput
}

func (m *DraftStoreMock) SaveDraft(input models.GenerationInput) error {
	m.mu.Lock()
	m.Drafts = append(m.Drafts, input)
	m.mu.Unlock()
	if m.SaveDraftFunc != nil {
		return m.SaveDraftFunc(input)
	}
	return nil
}
