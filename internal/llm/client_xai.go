package llm

import "time"

// XAIClient implements Client for the xAI (Grok) API, which speaks the
// OpenAI chat completions protocol.
type XAIClient struct {
	*OpenAIClient
}

// DefaultXAIConfig returns sensible defaults.
func DefaultXAIConfig(apiKey string) XAIConfig {
	return XAIConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.x.ai/v1",
		Model:   "grok-3-mini",
		Timeout: 2 * time.Minute,
	}
}

// NewXAIClient creates a new xAI client.
func NewXAIClient(apiKey string) *XAIClient {
	return NewXAIClientWithConfig(DefaultXAIConfig(apiKey))
}

// NewXAIClientWithConfig creates a new xAI client with custom config.
func NewXAIClientWithConfig(config XAIConfig) *XAIClient {
	return &XAIClient{OpenAIClient: newChatCompletionsClient(ProviderXAI, config)}
}
