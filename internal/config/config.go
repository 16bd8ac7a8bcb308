package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"tasweeq/internal/utils"
)

const (
	StaleResultsDiscard = "discard"
	StaleResultsApply   = "apply"
)

// Config is the runtime configuration read from the environment (and .env in development).
// The Gemini API key is deliberately not part of it: it is resolved from the
// keyring first and never logged.
type Config struct {
	Env          string  `envconfig:"TASWEEQ_ENV" default:"development"`
	DBPath       string  `envconfig:"TASWEEQ_DB_PATH"`
	Model        string  `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	Temperature  float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.8"`
	TopP         float32 `envconfig:"GEMINI_TOP_P" default:"0.95"`
	StaleResults string  `envconfig:"TASWEEQ_STALE_RESULTS" default:"discard"`
}

// LoadConfig loads .env when present, then processes the environment. A
// missing or unreadable .env is returned as dotenvErr for the caller to log;
// it never fails the load.
func LoadConfig() (cfg *Config, dotenvErr error, err error) {
	dotenvErr = utils.LoadEnv()
	cfg, err = FromEnv()
	return cfg, dotenvErr, err
}

// FromEnv processes the current environment without touching .env files.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.StaleResults = strings.ToLower(strings.TrimSpace(cfg.StaleResults))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("GEMINI_MODEL must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be within [0, 2], got %v", c.Temperature)
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return fmt.Errorf("GEMINI_TOP_P must be within (0, 1], got %v", c.TopP)
	}
	switch c.StaleResults {
	case StaleResultsDiscard, StaleResultsApply:
	default:
		return fmt.Errorf("TASWEEQ_STALE_RESULTS must be %q or %q", StaleResultsDiscard, StaleResultsApply)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
