package config

import "strings"

// LLMConfig configures the AI adapter.
type LLMConfig struct {
	Provider    string `yaml:"provider"` // openai, anthropic, gemini, xai
	APIKey      string `yaml:"api_key,omitempty"`
	Model       string `yaml:"model,omitempty"`        // empty uses the provider default
	SearchModel string `yaml:"search_model,omitempty"` // reported by provider info only
	BaseURL     string `yaml:"base_url,omitempty"`
	Timeout     string `yaml:"timeout"`

	// Ask the model to re-classify entity types the synonym table cannot map.
	ClassifyUnknownTypes bool `yaml:"classify_unknown_types"`
}

// ValidProviders lists all supported LLM providers.
var ValidProviders = []string{"openai", "anthropic", "gemini", "xai"}

var apiKeyEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
	"xai":       "XAI_API_KEY",
}

// APIKeyEnvVar returns the environment variable holding the key for a provider.
func APIKeyEnvVar(provider string) string {
	return apiKeyEnvVars[strings.ToLower(provider)]
}

// IsValidProvider reports whether provider is one of ValidProviders.
func IsValidProvider(provider string) bool {
	for _, p := range ValidProviders {
		if provider == p {
			return true
		}
	}
	return false
}
