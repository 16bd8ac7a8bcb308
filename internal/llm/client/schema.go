package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/genai"

	"tasweeq/internal/models"
)

const (
	outputSchemaPath = "schemas/generation_output.schema.json"
	outputSchemaURL  = "https://tasweeq.local/schemas/generation_output.schema.json"
)

var (
	outputSchemaOnce sync.Once
	outputSchema     *jsonschema.Schema
	outputSchemaErr  error
)

// ResponseSchema is the schema the model is constrained to. It mirrors
// models.GenerationOutput field for field.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			models.FieldProductDescription: {
				Type:        genai.TypeString,
				Description: "الوصف التسويقي الرئيسي: فقرة قصيرة ومؤثرة تصف المنتج.",
			},
			models.FieldSocialPost: {
				Type:        genai.TypeString,
				Description: "منشور لمواقع التواصل الاجتماعي (انستغرام، فيسبوك) مع رموز تعبيرية مناسبة.",
			},
			models.FieldAdHeadline: {
				Type:        genai.TypeString,
				Description: "عنوان إعلاني قصير وجذاب لا يزيد عن 7 كلمات.",
			},
			models.FieldUSP: {
				Type:        genai.TypeArray,
				Description: "3 نقاط بيع فريدة ومختصرة توضح أهم المميزات.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			models.FieldHashtags: {
				Type:        genai.TypeArray,
				Description: "قائمة من 5 إلى 10 هاشتاغات ذكية ومرتبطة بالمنتج.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required:         models.OutputFields(),
		PropertyOrdering: models.OutputFields(),
	}
}

func compiledOutputSchema() (*jsonschema.Schema, error) {
	outputSchemaOnce.Do(func() {
		raw, err := embeddedSchemas.ReadFile(outputSchemaPath)
		if err != nil {
			outputSchemaErr = fmt.Errorf("read output schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(outputSchemaURL, bytes.NewReader(raw)); err != nil {
			outputSchemaErr = fmt.Errorf("output schema load failed: %w", err)
			return
		}
		compiled, err := c.Compile(outputSchemaURL)
		if err != nil {
			outputSchemaErr = fmt.Errorf("output schema compile failed: %w", err)
			return
		}
		outputSchema = compiled
	})
	return outputSchema, outputSchemaErr
}

// DecodeOutput turns the raw model text into a GenerationOutput. Any text that
// is not JSON, or JSON that misses a field or has the wrong element types, is
// rejected with ErrMalformedResponse. Partial objects are never returned.
func DecodeOutput(raw string) (*models.GenerationOutput, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedResponse)
	}

	schema, err := compiledOutputSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %v", ErrMalformedResponse, err)
	}

	var out models.GenerationOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}
