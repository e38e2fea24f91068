package llm

import (
	"context"
	"errors"
	"testing"

	"resumegraph/internal/usage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticClient struct {
	resp string
	err  error
}

func (c staticClient) Complete(context.Context, string) (string, error) { return c.resp, c.err }

func (c staticClient) CompleteWithSystem(context.Context, string, string) (string, error) {
	return c.resp, c.err
}

func (staticClient) Info() ProviderInfo {
	return ProviderInfo{Provider: ProviderAnthropic, ContentModel: "claude-test"}
}

func TestTrackingClient_RecordsCalls(t *testing.T) {
	tracker := usage.NewTracker()
	c := NewTrackingClient(staticClient{resp: "tool"}, tracker)

	ctx := usage.WithOperation(context.Background(), usage.OperationClassify)
	got, err := c.Complete(ctx, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "tool", got)

	_, err = c.CompleteWithSystem(context.Background(), "sys", "user")
	require.NoError(t, err)

	stats := tracker.Stats()
	assert.Equal(t, 2, stats.Total.Calls)
	assert.Equal(t, int64(len("prompt")+len("sysuser")), stats.Total.PromptChars)
	assert.Equal(t, 1, stats.ByOperation[usage.OperationClassify].Calls)
	assert.Equal(t, 2, stats.ByProvider["anthropic"].Calls)
	assert.Equal(t, 2, stats.ByModel["claude-test"].Calls)
	assert.Equal(t, ProviderAnthropic, c.Info().Provider)
}

func TestTrackingClient_CountsCharactersNotBytes(t *testing.T) {
	tracker := usage.NewTracker()
	c := NewTrackingClient(staticClient{resp: "技能"}, tracker)

	_, err := c.Complete(context.Background(), "李明是工程师")
	require.NoError(t, err)

	stats := tracker.Stats()
	assert.Equal(t, int64(6), stats.Total.PromptChars)
	assert.Equal(t, int64(2), stats.Total.ResponseChars)
}

func TestTrackingClient_RecordsFailures(t *testing.T) {
	tracker := usage.NewTracker()
	boom := errors.New("boom")
	c := NewTrackingClient(staticClient{err: boom}, tracker)

	_, err := c.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, tracker.Stats().Total.Failures)
}
