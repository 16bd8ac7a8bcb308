package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

const (
	serviceName    = "tasweeq"
	ProviderGemini = "gemini"
)

// Environment variables consulted when the keyring holds no Gemini key.
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// KeyringService stores provider API keys in the OS keychain and answers the
// credential gate: is a usable Gemini key selected?
type KeyringService struct {
	mu   sync.Mutex
	ring keyring.Keyring
	open func() (keyring.Keyring, error)
}

func NewKeyringService() *KeyringService {
	return &KeyringService{
		open: func() (keyring.Keyring, error) {
			return keyring.Open(keyring.Config{
				ServiceName:              serviceName,
				KeychainTrustApplication: true,
				LibSecretCollectionName:  "login",
				KWalletAppID:             serviceName,
				KWalletFolder:            serviceName,
				WinCredPrefix:            serviceName,
			})
		},
	}
}

// NewKeyringServiceWithRing uses an already opened keyring, e.g. keyring.NewArrayKeyring.
func NewKeyringServiceWithRing(ring keyring.Keyring) *KeyringService {
	return &KeyringService{ring: ring}
}

func (s *KeyringService) Startup() error {
	_, err := s.keyring()
	return err
}

func (s *KeyringService) keyring() (keyring.Keyring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ring != nil {
		return s.ring, nil
	}
	if s.open == nil {
		return nil, errors.New("keyring not configured")
	}
	ring, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	s.ring = ring
	return ring, nil
}

func (s *KeyringService) StoreApiKey(provider string, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("API key is empty")
	}
	if provider == "" {
		return errors.New("provider is required")
	}

	ring, err := s.keyring()
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{
		Key:         provider,
		Data:        []byte(apiKey),
		Label:       provider + " API key",
		Description: "API key for " + provider + " used by Tasweeq",
	})
}

func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	ring, err := s.keyring()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(provider)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(item.Data)), nil
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	ring, err := s.keyring()
	if err != nil {
		return err
	}
	return ring.Remove(provider)
}

func (s *KeyringService) ListApiKeys() ([]map[string]string, error) {
	ring, err := s.keyring()
	if err != nil {
		return nil, err
	}
	providers, err := ring.Keys()
	if err != nil {
		return nil, err
	}

	var results []map[string]string
	for _, provider := range providers {
		if _, err := ring.Get(provider); err != nil {
			continue
		}
		results = append(results, map[string]string{
			"provider":    provider,
			"label":       provider + " API key",
			"description": "API key for " + provider + " used by Tasweeq",
		})
	}
	return results, nil
}

// ResolveApiKey returns the Gemini key, preferring the keyring over the environment.
func (s *KeyringService) ResolveApiKey() (string, error) {
	key, err := s.GetApiKey(ProviderGemini)
	if err == nil && key != "" {
		return key, nil
	}
	for _, name := range apiKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return "", err
	}
	return "", errors.New("gemini API key is not configured")
}

// KeyReady reports whether a usable Gemini key is selected.
func (s *KeyringService) KeyReady() bool {
	key, err := s.ResolveApiKey()
	return err == nil && key != ""
}
