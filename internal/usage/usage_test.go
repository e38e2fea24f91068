package usage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Aggregates(t *testing.T) {
	tracker := NewTracker()
	extract := WithOperation(context.Background(), OperationExtract)
	classify := WithOperation(context.Background(), OperationClassify)

	tracker.Track(extract, "openai", "gpt-4o", 100, 40, nil)
	tracker.Track(classify, "openai", "gpt-4o", 10, 5, nil)
	tracker.Track(classify, "openai", "gpt-4o", 10, 0, errors.New("429"))
	tracker.Track(context.Background(), "gemini", "gemini-2.5-flash", 1, 1, nil)

	stats := tracker.Stats()
	assert.Equal(t, Counts{Calls: 4, Failures: 1, PromptChars: 121, ResponseChars: 46}, stats.Total)
	assert.Equal(t, Counts{Calls: 1, PromptChars: 100, ResponseChars: 40}, stats.ByOperation[OperationExtract])
	assert.Equal(t, 2, stats.ByOperation[OperationClassify].Calls)
	assert.Equal(t, 1, stats.ByOperation[OperationClassify].Failures)
	assert.Equal(t, 1, stats.ByOperation[OperationUnknown].Calls)
	assert.Equal(t, 3, stats.ByProvider["openai"].Calls)
	assert.Equal(t, 1, stats.ByModel["gemini-2.5-flash"].Calls)
}

func TestTracker_ZeroValue(t *testing.T) {
	var tracker Tracker
	assert.Empty(t, tracker.Stats().ByProvider)

	tracker.Track(context.Background(), "openai", "gpt-4o", 3, 2, nil)
	assert.Equal(t, 1, tracker.Stats().ByProvider["openai"].Calls)
}

func TestTracker_StatsIsCopy(t *testing.T) {
	tracker := NewTracker()
	tracker.Track(context.Background(), "xai", "grok", 1, 1, nil)

	stats := tracker.Stats()
	stats.ByProvider["xai"] = Counts{}

	assert.Equal(t, 1, tracker.Stats().ByProvider["xai"].Calls)
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Track(context.Background(), "openai", "m", 1, 1, nil)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, tracker.Stats().Total.Calls)
}

func TestOperationFrom(t *testing.T) {
	assert.Equal(t, OperationUnknown, OperationFrom(context.Background()))
	assert.Equal(t, OperationUnknown, OperationFrom(WithOperation(context.Background(), "")))
	assert.Equal(t, OperationExtract, OperationFrom(WithOperation(context.Background(), OperationExtract)))
}
