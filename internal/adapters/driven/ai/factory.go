package ai

import (
	"fmt"

	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Provider identifies an LLM backend
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// Settings configures LLM service creation
type Settings struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
}

// IsConfigured reports whether the settings describe a usable service
func (s Settings) IsConfigured() bool {
	switch s.Provider {
	case ProviderOpenAI:
		return s.APIKey != ""
	case ProviderOllama:
		return s.BaseURL != ""
	default:
		return false
	}
}

// NewLLMService creates an LLM service from settings. Unconfigured settings
// return (nil, nil); the runtime treats a nil service as "LLM unavailable".
func NewLLMService(settings Settings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case ProviderOpenAI:
		return NewOpenAILLM(settings.APIKey, settings.Model, settings.BaseURL)
	case ProviderOllama:
		// Ollama exposes an OpenAI-compatible surface under /v1; it ignores
		// the bearer token, but the client requires a non-empty one.
		model := settings.Model
		if model == "" {
			model = "llama3.1"
		}
		return NewOpenAILLM("ollama", model, settings.BaseURL+"/v1")
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
