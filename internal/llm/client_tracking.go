package llm

import (
	"context"
	"unicode/utf8"

	"resumegraph/internal/usage"
)

// TrackingClient wraps a Client and records every call in a usage.Tracker.
type TrackingClient struct {
	underlying Client
	tracker    *usage.Tracker
}

// NewTrackingClient wraps underlying.
func NewTrackingClient(underlying Client, tracker *usage.Tracker) *TrackingClient {
	return &TrackingClient{underlying: underlying, tracker: tracker}
}

// Complete implements Client.
func (c *TrackingClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.underlying.Complete(ctx, prompt)
	c.record(ctx, utf8.RuneCountInString(prompt), utf8.RuneCountInString(resp), err)
	return resp, err
}

// CompleteWithSystem implements Client.
func (c *TrackingClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.underlying.CompleteWithSystem(ctx, systemPrompt, userPrompt)
	c.record(ctx, utf8.RuneCountInString(systemPrompt)+utf8.RuneCountInString(userPrompt), utf8.RuneCountInString(resp), err)
	return resp, err
}

// Info implements Client.
func (c *TrackingClient) Info() ProviderInfo {
	return c.underlying.Info()
}

func (c *TrackingClient) record(ctx context.Context, promptChars, responseChars int, err error) {
	info := c.underlying.Info()
	c.tracker.Track(ctx, string(info.Provider), info.ContentModel, promptChars, responseChars, err)
}
