package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"resumegraph/internal/logging"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient implements Client for Google Gemini through the genai SDK.
// The SDK client is created on first use so a missing key only fails calls.
type GeminiClient struct {
	apiKey          string
	baseURL         string
	model           string
	searchModel     string
	timeout         time.Duration
	maxOutputTokens int32
	throttle        *throttle
	log             *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:          apiKey,
		Model:           "gemini-2.5-flash",
		SearchModel:     "gemini-2.5-flash",
		Timeout:         2 * time.Minute,
		MaxOutputTokens: 8192,
	}
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(apiKey string) *GeminiClient {
	return NewGeminiClientWithConfig(DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a new Gemini client with custom config.
func NewGeminiClientWithConfig(config GeminiConfig) *GeminiClient {
	log := logging.OrNop(config.Logger)
	return &GeminiClient{
		apiKey:          config.APIKey,
		baseURL:         config.BaseURL,
		model:           config.Model,
		searchModel:     config.SearchModel,
		timeout:         config.Timeout,
		maxOutputTokens: config.MaxOutputTokens,
		throttle:        &throttle{interval: 100 * time.Millisecond},
		log:             log,
	}
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}

	cc := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: c.timeout},
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	c.client = client
	return client, nil
}

// Complete sends a prompt and returns the completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system instruction.
func (c *GeminiClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := withDefaultTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	c.log.Debug("generate content",
		zap.String("model", c.model),
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userPrompt)))

	client, err := c.sdk(ctx)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	if err := c.throttle.wait(ctx); err != nil {
		return "", err
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1),
		MaxOutputTokens:   c.maxOutputTokens,
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), cfg)
	if err != nil {
		c.log.Error("generate content failed", zap.Duration("elapsed", time.Since(startTime)), zap.Error(err))
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	response := strings.TrimSpace(resp.Text())
	if response == "" {
		return "", fmt.Errorf("no completion returned")
	}

	c.log.Debug("generate content done", zap.Duration("elapsed", time.Since(startTime)), zap.Int("response_len", len(response)))
	return response, nil
}

// Info describes the provider and models.
func (c *GeminiClient) Info() ProviderInfo {
	search := c.searchModel
	if search == "" {
		search = c.model
	}
	return ProviderInfo{Provider: ProviderGemini, ContentModel: c.model, SearchModel: search}
}
