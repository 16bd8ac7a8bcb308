package client

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiModel sends ContentRequests to the Gemini API. Each instance holds
// its own credential; there is no shared client.
type GeminiModel struct {
	client *genai.Client
}

// NewGeminiModel builds a Gemini transport for apiKey. A blank key yields a
// model whose calls fail with ErrMissingCredential so the failure reaches the
// UI through the normal error path.
func NewGeminiModel(ctx context.Context, apiKey string) (*GeminiModel, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return &GeminiModel{}, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiModel{client: c}, nil
}

func (m *GeminiModel) GenerateText(ctx context.Context, req ContentRequest) (string, error) {
	if m == nil || m.client == nil {
		return "", ErrMissingCredential
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: req.ResponseMIMEType,
		ResponseSchema:   req.ResponseSchema,
		Temperature:      genai.Ptr(req.Temperature),
		TopP:             genai.Ptr(req.TopP),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// NewGeminiGenerator wires a MarketingGenerator to the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey string, opts GeneratorOptions) (*MarketingGenerator, error) {
	model, err := NewGeminiModel(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return NewMarketingGenerator(model, opts), nil
}
