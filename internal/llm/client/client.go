package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"tasweeq/internal/models"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = float32(0.8)
	DefaultTopP        = float32(0.95)

	jsonMIMEType = "application/json"
)

// ContentRequest is everything sent to the generative API for one generation.
type ContentRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	ResponseMIMEType  string
	ResponseSchema    *genai.Schema
	Temperature       float32
	TopP              float32
}

// ContentModel performs the single external call and returns the raw text payload.
type ContentModel interface {
	GenerateText(ctx context.Context, req ContentRequest) (string, error)
}

// GeneratorOptions configures a MarketingGenerator. Nil sampling values fall
// back to DefaultTemperature and DefaultTopP; an explicit zero is kept.
type GeneratorOptions struct {
	Model       string
	Temperature *float32
	TopP        *float32
	Logger      *zerolog.Logger
}

// MarketingGenerator owns the contract with the generative API: it builds the
// prompt, issues one schema-constrained request and decodes the answer.
// It keeps no state between calls.
type MarketingGenerator struct {
	model       ContentModel
	modelName   string
	temperature float32
	topP        float32
	logger      zerolog.Logger
}

func NewMarketingGenerator(model ContentModel, opts GeneratorOptions) *MarketingGenerator {
	g := &MarketingGenerator{
		model:       model,
		modelName:   strings.TrimSpace(opts.Model),
		temperature: DefaultTemperature,
		topP:        DefaultTopP,
		logger:      zerolog.Nop(),
	}
	if g.modelName == "" {
		g.modelName = DefaultModel
	}
	if opts.Temperature != nil {
		g.temperature = *opts.Temperature
	}
	if opts.TopP != nil {
		g.topP = *opts.TopP
	}
	if opts.Logger != nil {
		g.logger = opts.Logger.With().Str("component", "generator").Str("model", g.modelName).Logger()
	}
	return g
}

// Request builds the request for input without sending it.
func (g *MarketingGenerator) Request(input models.GenerationInput) (ContentRequest, error) {
	prompt, err := BuildPrompt(input)
	if err != nil {
		return ContentRequest{}, err
	}
	system, err := SystemInstruction()
	if err != nil {
		return ContentRequest{}, err
	}
	return ContentRequest{
		Model:             g.modelName,
		Prompt:            prompt,
		SystemInstruction: system,
		ResponseMIMEType:  jsonMIMEType,
		ResponseSchema:    ResponseSchema(),
		Temperature:       g.temperature,
		TopP:              g.topP,
	}, nil
}

// Generate runs one generation. Transport errors are wrapped, not interpreted,
// so callers can classify them from the original message.
func (g *MarketingGenerator) Generate(ctx context.Context, input models.GenerationInput) (*models.GenerationOutput, error) {
	if g == nil || g.model == nil {
		return nil, fmt.Errorf("generate content: %w", ErrMissingCredential)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	req, err := g.Request(input)
	if err != nil {
		return nil, err
	}

	text, err := g.model.GenerateText(ctx, req)
	if err != nil {
		g.logger.Error().Err(err).Msg("generative api call failed")
		return nil, fmt.Errorf("generate content: %w", err)
	}

	out, err := DecodeOutput(text)
	if err != nil {
		g.logger.Warn().Err(err).Int("payload_len", len(text)).Msg("rejected model response")
		return nil, err
	}

	g.logger.Debug().
		Int("usp", len(out.USP)).
		Int("hashtags", len(out.Hashtags)).
		Msg("generation decoded")
	return out, nil
}
