package models

// LLMModel represents a single language model option exposed to the UI.
type LLMModel struct {
	DisplayName  string `json:"displayName"`
	APIName      string `json:"apiName"`
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	Default      bool   `json:"default"`
}
