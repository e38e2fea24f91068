package llm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ProviderConfig holds everything needed to construct a Client.
type ProviderConfig struct {
	Provider    Provider
	APIKey      string
	Model       string // Optional model override
	SearchModel string // Optional search model override
	BaseURL     string // Optional endpoint override
	Timeout     time.Duration
	Logger      *zap.Logger
}

// ProviderSpec describes a supported provider.
type ProviderSpec struct {
	Provider     Provider
	DefaultModel string
	APIKeyEnv    string
}

// SupportedProviders lists the providers NewClientFromConfig can build.
func SupportedProviders() []ProviderSpec {
	return []ProviderSpec{
		{ProviderOpenAI, DefaultOpenAIConfig("").Model, "OPENAI_API_KEY"},
		{ProviderAnthropic, DefaultAnthropicConfig("").Model, "ANTHROPIC_API_KEY"},
		{ProviderGemini, DefaultGeminiConfig("").Model, "GEMINI_API_KEY"},
		{ProviderXAI, DefaultXAIConfig("").Model, "XAI_API_KEY"},
	}
}

// ParseProvider maps a config string to a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, spec := range SupportedProviders() {
		if spec.Provider == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider: %s (valid: openai, anthropic, gemini, xai)", s)
}

// NewClientFromConfig creates the Client for exactly the provider named in
// config. There is no auto-detection.
func NewClientFromConfig(config ProviderConfig) (Client, error) {
	switch config.Provider {
	case ProviderOpenAI:
		c := DefaultOpenAIConfig(config.APIKey)
		applyOpenAIOverrides(&c, config)
		return NewOpenAIClientWithConfig(c), nil

	case ProviderXAI:
		c := DefaultXAIConfig(config.APIKey)
		applyOpenAIOverrides(&c, config)
		return NewXAIClientWithConfig(c), nil

	case ProviderAnthropic:
		c := DefaultAnthropicConfig(config.APIKey)
		if config.Model != "" {
			c.Model = config.Model
		}
		if config.BaseURL != "" {
			c.BaseURL = config.BaseURL
		}
		if config.Timeout > 0 {
			c.Timeout = config.Timeout
		}
		c.Logger = config.Logger
		return NewAnthropicClientWithConfig(c), nil

	case ProviderGemini:
		c := DefaultGeminiConfig(config.APIKey)
		if config.Model != "" {
			c.Model = config.Model
			c.SearchModel = config.Model
		}
		if config.SearchModel != "" {
			c.SearchModel = config.SearchModel
		}
		if config.BaseURL != "" {
			c.BaseURL = config.BaseURL
		}
		if config.Timeout > 0 {
			c.Timeout = config.Timeout
		}
		c.Logger = config.Logger
		return NewGeminiClientWithConfig(c), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", config.Provider)
	}
}

func applyOpenAIOverrides(c *OpenAIConfig, config ProviderConfig) {
	if config.Model != "" {
		c.Model = config.Model
		c.SearchModel = ""
	}
	if config.SearchModel != "" {
		c.SearchModel = config.SearchModel
	}
	if config.BaseURL != "" {
		c.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		c.Timeout = config.Timeout
	}
	c.Logger = config.Logger
}
