// Package llm provides the AI adapters used to extract and classify
// knowledge graph content. Each provider is its own Client implementation and
// is selected explicitly through NewClientFromConfig.
package llm

import (
	"context"
)

const defaultSystemPrompt = "You are a precise resume analyst. Follow the output format you are given exactly and do not add commentary."

// Client defines the interface for LLM providers.
type Client interface {
	// Complete sends a prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteWithSystem sends a prompt with a system message.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Info describes the provider and the models in use.
	Info() ProviderInfo
}

// ProviderInfo describes a configured provider.
type ProviderInfo struct {
	Provider     Provider `json:"provider"`
	ContentModel string   `json:"content_model"`
	SearchModel  string   `json:"search_model"`
}

// Provider represents an LLM provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderXAI       Provider = "xai"
)
