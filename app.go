package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"tasweeq/internal/config"
	"tasweeq/internal/llm/client"
	"tasweeq/internal/models"
	"tasweeq/internal/services"
)

// FormInput is the product form exactly as the frontend sends it.
type FormInput struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     string `json:"price"`
	Note      string `json:"note"`
	BrandTone string `json:"brandTone"`
}

// ToGenerationInput turns blank optional fields into "not provided".
func (f FormInput) ToGenerationInput() (models.GenerationInput, error) {
	tone, err := models.ParseBrandTone(f.BrandTone)
	if err != nil {
		return models.GenerationInput{}, err
	}
	in := models.GenerationInput{
		Name:      f.Name,
		Category:  f.Category,
		Price:     f.Price,
		BrandTone: tone,
	}
	if note := strings.TrimSpace(f.Note); note != "" {
		in.Note = &note
	}
	return in, nil
}

// App struct
type App struct {
	ctx         context.Context
	cfg         *config.Config
	logger      zerolog.Logger
	Session     services.GenerationSessionService
	AppSettings services.AppSettingsService
	Keyring     *services.KeyringService
	dbClose     func() error
}

// NewApp creates a new App application struct
func NewApp(cfg *config.Config, logger zerolog.Logger, session services.GenerationSessionService, settings services.AppSettingsService, keys *services.KeyringService) *App {
	return &App{
		ctx:         context.Background(),
		cfg:         cfg,
		logger:      logger,
		Session:     session,
		AppSettings: settings,
		Keyring:     keys,
	}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if err := a.rebuildGenerator(); err != nil {
		a.logger.Error().Err(err).Msg("failed to build generator")
	}
	a.Session.Startup(ctx)
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.Session.Wait()

	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// rebuildGenerator creates a fresh Gemini generator from the current key,
// the saved model choice and the sampling config.
func (a *App) rebuildGenerator() error {
	key, err := a.Keyring.ResolveApiKey()
	if err != nil {
		a.logger.Debug().Err(err).Msg("no gemini api key resolved")
		key = ""
	}

	modelName := a.cfg.Model
	if a.AppSettings != nil {
		if settings, err := a.AppSettings.Get(); err == nil && strings.TrimSpace(settings.ModelName) != "" {
			modelName = settings.ModelName
		}
	}

	gen, err := client.NewGeminiGenerator(a.ctx, key, client.GeneratorOptions{
		Model:       modelName,
		Temperature: &a.cfg.Temperature,
		TopP:        &a.cfg.TopP,
		Logger:      &a.logger,
	})
	if err != nil {
		return err
	}
	a.Session.SetGenerator(gen)
	return nil
}

// GenerateContent submits the form. Invalid input is returned as an error and
// leaves the displayed state unchanged.
func (a *App) GenerateContent(form FormInput) (models.SessionState, error) {
	input, err := form.ToGenerationInput()
	if err != nil {
		return a.Session.State(), err
	}
	if _, err := a.Session.Submit(input); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return a.Session.State(), errors.New(services.UserMessage(models.ErrorKindLocalValidation))
		}
		return a.Session.State(), err
	}
	return a.Session.State(), nil
}

func (a *App) SessionState() models.SessionState {
	return a.Session.State()
}

func (a *App) BrandTones() []models.BrandToneOption {
	return models.BrandTones()
}

// SelectApiKey stores a Gemini key and reopens the credential gate.
func (a *App) SelectApiKey(apiKey string) (bool, error) {
	if err := a.Keyring.StoreApiKey(services.ProviderGemini, apiKey); err != nil {
		return false, err
	}
	if err := a.rebuildGenerator(); err != nil {
		return false, err
	}
	return a.Session.RefreshCredential(), nil
}

// ClearApiKey removes the stored Gemini key and closes the credential gate
// unless an environment key is still configured.
func (a *App) ClearApiKey() (bool, error) {
	if err := a.Keyring.DeleteApiKey(services.ProviderGemini); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return false, err
	}
	if err := a.rebuildGenerator(); err != nil {
		return false, err
	}
	return a.Session.RefreshCredential(), nil
}

// ConfiguredProviders lists providers with a stored key, without key material.
func (a *App) ConfiguredProviders() ([]map[string]string, error) {
	return a.Keyring.ListApiKeys()
}

func (a *App) ApiKeyReady() bool {
	return a.Keyring.KeyReady()
}

// CopyOutputField copies one section of the current result to the clipboard.
func (a *App) CopyOutputField(field string) error {
	st := a.Session.State()
	if st.Status != models.StatusSuccess || st.Output == nil {
		return errors.New("no generated content to copy")
	}
	text, err := st.Output.CopyText(field)
	if err != nil {
		return err
	}
	return runtime.ClipboardSetText(a.ctx, text)
}

func (a *App) GetAppSettings() (*models.AppSettings, error) {
	return a.AppSettings.Get()
}

// UpdateAppSettings saves the preferences and rebuilds the generator so a
// model change applies to the next submission.
func (a *App) UpdateAppSettings(theme, locale, modelName string) (*models.AppSettings, error) {
	settings, err := a.AppSettings.Update(theme, locale, modelName)
	if err != nil {
		return nil, err
	}
	if err := a.rebuildGenerator(); err != nil {
		a.logger.Error().Err(err).Msg("failed to rebuild generator after settings change")
	}
	return settings, nil
}

func (a *App) ListModels() ([]models.LLMModel, error) {
	return a.AppSettings.ListModels()
}

func (a *App) LastDraft() (*models.GenerationInput, error) {
	return a.AppSettings.LastDraft()
}
