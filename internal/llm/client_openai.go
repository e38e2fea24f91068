package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resumegraph/internal/logging"

	"go.uber.org/zap"
)

// OpenAIClient implements Client for the OpenAI Chat Completions API.
type OpenAIClient struct {
	provider    Provider
	apiKey      string
	baseURL     string
	model       string
	searchModel string
	httpClient  *http.Client
	throttle    *throttle
	retry       retryPolicy
	log         *zap.Logger
}

// DefaultOpenAIConfig returns sensible defaults.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o",
		SearchModel: "gpt-4o-search-preview",
		Timeout:     2 * time.Minute,
	}
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return NewOpenAIClientWithConfig(DefaultOpenAIConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom config.
func NewOpenAIClientWithConfig(config OpenAIConfig) *OpenAIClient {
	return newChatCompletionsClient(ProviderOpenAI, config)
}

func newChatCompletionsClient(provider Provider, config OpenAIConfig) *OpenAIClient {
	log := logging.OrNop(config.Logger)
	return &OpenAIClient{
		provider:    provider,
		apiKey:      config.APIKey,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		model:       config.Model,
		searchModel: config.SearchModel,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		throttle: &throttle{interval: 100 * time.Millisecond},
		retry:    defaultRetryPolicy,
		log:      log,
	}
}

// Complete sends a prompt and returns the completion.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system message.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := withDefaultTimeout(ctx, c.httpClient.Timeout)
	defer cancel()

	startTime := time.Now()
	c.log.Debug("chat completion",
		zap.String("provider", string(c.provider)),
		zap.String("model", c.model),
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userPrompt)))

	if c.apiKey == "" {
		return "", fmt.Errorf("%s: API key not configured", c.provider)
	}

	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	if err := c.throttle.wait(ctx); err != nil {
		return "", err
	}

	reqBody := OpenAIRequest{
		Model: c.model,
		Messages: []OpenAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   4096,
		Temperature: 0.1,
	}

	body, err := postJSON(ctx, c.httpClient, c.retry, c.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + c.apiKey}, reqBody)
	if err != nil {
		c.log.Error("chat completion failed",
			zap.String("provider", string(c.provider)),
			zap.Duration("elapsed", time.Since(startTime)),
			zap.Error(err))
		return "", err
	}

	var resp OpenAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug("chat completion done",
		zap.String("provider", string(c.provider)),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("response_len", len(response)))
	return response, nil
}

// Info describes the provider and models.
func (c *OpenAIClient) Info() ProviderInfo {
	search := c.searchModel
	if search == "" {
		search = c.model
	}
	return ProviderInfo{Provider: c.provider, ContentModel: c.model, SearchModel: search}
}
