// Package usage counts AI calls per run, broken down by operation, provider
// and model.
package usage

import (
	"context"
	"sync"
)

// Operations recorded by the knowledge graph pipeline.
const (
	OperationExtract  = "extract"
	OperationClassify = "classify"
	OperationUnknown  = "unknown"
)

type operationKey struct{}

// WithOperation labels AI calls made with ctx.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFrom returns the operation label on ctx, or OperationUnknown.
func OperationFrom(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return OperationUnknown
}

// Counts holds call and size totals. Sizes are in characters (runes), not
// bytes or tokens, because not every provider reports token usage.
type Counts struct {
	Calls         int   `json:"calls"`
	Failures      int   `json:"failures"`
	PromptChars   int64 `json:"prompt_chars"`
	ResponseChars int64 `json:"response_chars"`
}

// Add records one call.
func (c *Counts) Add(promptChars, responseChars int, failed bool) {
	c.Calls++
	if failed {
		c.Failures++
	}
	c.PromptChars += int64(promptChars)
	c.ResponseChars += int64(responseChars)
}

// Stats is a snapshot of a Tracker.
type Stats struct {
	Total       Counts            `json:"total"`
	ByOperation map[string]Counts `json:"by_operation"`
	ByProvider  map[string]Counts `json:"by_provider"`
	ByModel     map[string]Counts `json:"by_model"`
}

// Tracker accumulates AI call counts. It is safe for concurrent use and the
// zero value is ready to use.
type Tracker struct {
	mu    sync.Mutex
	stats Stats
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{stats: Stats{
		ByOperation: make(map[string]Counts),
		ByProvider:  make(map[string]Counts),
		ByModel:     make(map[string]Counts),
	}}
}

// Track records one call. The operation comes from ctx.
func (t *Tracker) Track(ctx context.Context, provider, model string, promptChars, responseChars int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stats.ByOperation == nil {
		t.stats.ByOperation = make(map[string]Counts)
		t.stats.ByProvider = make(map[string]Counts)
		t.stats.ByModel = make(map[string]Counts)
	}
	failed := err != nil
	t.stats.Total.Add(promptChars, responseChars, failed)
	addTo(t.stats.ByOperation, OperationFrom(ctx), promptChars, responseChars, failed)
	addTo(t.stats.ByProvider, provider, promptChars, responseChars, failed)
	addTo(t.stats.ByModel, model, promptChars, responseChars, failed)
}

// Stats returns a copy of the current totals.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{
		Total:       t.stats.Total,
		ByOperation: copyCounts(t.stats.ByOperation),
		ByProvider:  copyCounts(t.stats.ByProvider),
		ByModel:     copyCounts(t.stats.ByModel),
	}
}

func addTo(m map[string]Counts, key string, promptChars, responseChars int, failed bool) {
	entry := m[key]
	entry.Add(promptChars, responseChars, failed)
	m[key] = entry
}

func copyCounts(src map[string]Counts) map[string]Counts {
	dst := make(map[string]Counts, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
