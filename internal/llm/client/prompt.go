package client

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"tasweeq/internal/models"
)

const (
	productPromptName     = "product_prompt.txt"
	systemInstructionPath = "prompts/system_instruction.txt"

	// NoteNotProvided replaces a skipped merchant note.
	NoteNotProvided = "لا يوجد"
	// ToneNotProvided asks the model to infer the tone from name and category.
	ToneNotProvided = "غير محدد، الرجاء استنتاج النغمة الأنسب"
)

var (
	promptOnce      sync.Once
	promptTemplates *template.Template
	systemText      string
	promptLoadErr   error
)

type promptFields struct {
	Name     string
	Category string
	Price    string
	Note     string
	Tone     string
}

func loadPrompts() error {
	promptOnce.Do(func() {
		tmpl, err := template.ParseFS(embeddedPrompts, "prompts/*.txt")
		if err != nil {
			promptLoadErr = fmt.Errorf("parse prompt templates: %w", err)
			return
		}
		raw, err := embeddedPrompts.ReadFile(systemInstructionPath)
		if err != nil {
			promptLoadErr = fmt.Errorf("read system instruction: %w", err)
			return
		}
		promptTemplates = tmpl
		systemText = strings.TrimSpace(string(raw))
	})
	return promptLoadErr
}

// SystemInstruction returns the fixed persona and style rules sent with every request.
func SystemInstruction() (string, error) {
	if err := loadPrompts(); err != nil {
		return "", err
	}
	return systemText, nil
}

// BuildPrompt renders the product prompt. Skipped optional fields are replaced
// with explicit placeholders so the model always receives every line.
func BuildPrompt(input models.GenerationInput) (string, error) {
	if err := loadPrompts(); err != nil {
		return "", err
	}

	fields := promptFields{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Price:    strings.TrimSpace(input.Price),
		Note:     NoteNotProvided,
		Tone:     ToneNotProvided,
	}
	if input.Note != nil {
		if note := strings.TrimSpace(*input.Note); note != "" {
			fields.Note = note
		}
	}
	if input.BrandTone != nil && input.BrandTone.Valid() {
		fields.Tone = input.BrandTone.Label()
	}

	var b strings.Builder
	if err := promptTemplates.ExecuteTemplate(&b, productPromptName, fields); err != nil {
		return "", fmt.Errorf("render product prompt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}
