package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// throttle spaces consecutive requests from one client.
type throttle struct {
	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration
}

func (t *throttle) wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if elapsed := time.Since(t.lastRequest); elapsed < t.interval {
		select {
		case <-time.After(t.interval - elapsed):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	t.lastRequest = time.Now()
	return nil
}

// retryPolicy controls retries of rate-limited and transport-failed requests.
type retryPolicy struct {
	maxRetries  int
	backoffBase time.Duration
}

var defaultRetryPolicy = retryPolicy{maxRetries: 3, backoffBase: time.Second}

func (p retryPolicy) backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * p.backoffBase
}

// withDefaultTimeout applies timeout when ctx carries no deadline.
func withDefaultTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// postJSON marshals reqBody, POSTs it to url and returns the body of a 200
// response. 429s and transport errors are retried with exponential backoff;
// any other non-200 status fails immediately.
func postJSON(ctx context.Context, httpClient *http.Client, policy retryPolicy, url string, headers map[string]string, reqBody any) ([]byte, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for i := 0; i <= policy.maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(policy.backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("request failed: %w", ctx.Err())
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limit exceeded (429)")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
