package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasweeq/internal/assets"
	"tasweeq/internal/models"
	"tasweeq/internal/repositories"
)

type AppSettingsService interface {
	Get() (*models.AppSettings, error)
	Update(theme, locale, modelName string) (*models.AppSettings, error)
	ListModels() ([]models.LLMModel, error)
	SaveDraft(input models.GenerationInput) error
	LastDraft() (*models.GenerationInput, error)
	Startup(ctx context.Context)
}

type appSettingsService struct {
	appSettings repositories.AppSettingsRepository
	context     context.Context
}

type rawModelCatalog struct {
	Provider struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"provider"`
	DefaultModel string `json:"defaultModel"`
	Models       []struct {
		DisplayName string `json:"displayName"`
		APIName     string `json:"apiName"`
	} `json:"models"`
}

func (s *appSettingsService) Startup(ctx context.Context) {
	s.context = ctx
}

func NewAppSettingsService(appSettings repositories.AppSettingsRepository) AppSettingsService {
	return &appSettingsService{appSettings: appSettings, context: context.Background()}
}

func (s *appSettingsService) ctx() context.Context {
	if s.context == nil {
		return context.Background()
	}
	return s.context
}

func (s *appSettingsService) Get() (*models.AppSettings, error) {
	return s.appSettings.Get(s.ctx())
}

func (s *appSettingsService) Update(theme, locale, modelName string) (*models.AppSettings, error) {
	if theme == "" {
		return nil, errors.New("theme is required")
	}
	if locale == "" {
		return nil, errors.New("locale is required")
	}

	// Validate theme values
	if theme != "light" && theme != "dark" && theme != "system" {
		return nil, errors.New("theme must be 'light', 'dark', or 'system'")
	}

	modelName = strings.TrimSpace(modelName)
	if modelName != "" {
		known, err := s.isKnownModel(modelName)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, fmt.Errorf("unknown model %q", modelName)
		}
	}

	current, err := s.appSettings.Get(s.ctx())
	if err != nil {
		return nil, err
	}

	current.Theme = theme
	current.Locale = locale
	if modelName != "" {
		current.ModelName = modelName
	}
	current.UpdatedAt = time.Now()

	if err := s.appSettings.Update(s.ctx(), current); err != nil {
		return nil, err
	}

	return current, nil
}

// ListModels returns the selectable Gemini models from the embedded catalog.
func (s *appSettingsService) ListModels() ([]models.LLMModel, error) {
	var parsed rawModelCatalog
	if err := json.Unmarshal(assets.ModelsData, &parsed); err != nil {
		return nil, fmt.Errorf("parse models asset: %w", err)
	}

	out := make([]models.LLMModel, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		apiName := strings.TrimSpace(m.APIName)
		if apiName == "" {
			continue
		}
		out = append(out, models.LLMModel{
			DisplayName:  m.DisplayName,
			APIName:      apiName,
			ProviderID:   parsed.Provider.ID,
			ProviderName: parsed.Provider.DisplayName,
			Default:      apiName == parsed.DefaultModel,
		})
	}
	return out, nil
}

func (s *appSettingsService) isKnownModel(name string) (bool, error) {
	list, err := s.ListModels()
	if err != nil {
		return false, err
	}
	for _, m := range list {
		if m.APIName == name {
			return true, nil
		}
	}
	return false, nil
}

// SaveDraft keeps the last submitted form so it can be restored after a restart.
func (s *appSettingsService) SaveDraft(input models.GenerationInput) error {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	current, err := s.appSettings.Get(s.ctx())
	if err != nil {
		return err
	}
	current.DraftJSON = string(data)
	current.UpdatedAt = time.Now()
	return s.appSettings.Update(s.ctx(), current)
}

// LastDraft returns the saved form, or nil when nothing was submitted yet.
func (s *appSettingsService) LastDraft() (*models.GenerationInput, error) {
	current, err := s.appSettings.Get(s.ctx())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(current.DraftJSON) == "" {
		return nil, nil
	}
	var draft models.GenerationInput
	if err := json.Unmarshal([]byte(current.DraftJSON), &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}
