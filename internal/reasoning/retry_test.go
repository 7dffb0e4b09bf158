package reasoning

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns scripted results per call.
type fakeClient struct {
	calls   int
	results []fakeResult
}

type fakeResult struct {
	text string
	err  error
}

func (f *fakeClient) Complete(_ context.Context, _ string) (string, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	r := f.results[idx]
	return r.text, r.err
}

func TestCompleteWithRetry(t *testing.T) {
	t.Run("returns immediately on success", func(t *testing.T) {
		client := &fakeClient{results: []fakeResult{{text: "ok"}}}

		result, err := CompleteWithRetry(context.Background(), client, "prompt", 3, time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("retries retryable failures then succeeds", func(t *testing.T) {
		client := &fakeClient{results: []fakeResult{
			{err: fmt.Errorf("%w: status 503", ErrServerError)},
			{err: fmt.Errorf("%w: status 429", ErrRateLimited)},
			{text: "recovered"},
		}}

		result, err := CompleteWithRetry(context.Background(), client, "prompt", 3, time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "recovered", result)
		assert.Equal(t, 3, client.calls)
	})

	t.Run("stops after max attempts", func(t *testing.T) {
		client := &fakeClient{results: []fakeResult{
			{err: ErrTimeout},
		}}

		_, err := CompleteWithRetry(context.Background(), client, "prompt", 3, time.Millisecond)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, 3, client.calls)
	})

	t.Run("does not retry non-retryable failures", func(t *testing.T) {
		client := &fakeClient{results: []fakeResult{
			{err: fmt.Errorf("%w: status 400", ErrClientError)},
		}}

		_, err := CompleteWithRetry(context.Background(), client, "prompt", 3, time.Millisecond)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrClientError)
		assert.Equal(t, 1, client.calls, "client errors must not be retried")
	})

	t.Run("does not retry malformed responses", func(t *testing.T) {
		client := &fakeClient{results: []fakeResult{
			{err: fmt.Errorf("%w: empty choices", ErrMalformedResponse)},
		}}

		_, err := CompleteWithRetry(context.Background(), client, "prompt", 3, time.Millisecond)

		require.Error(t, err)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("honors context cancellation between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		client := &fakeClient{results: []fakeResult{
			{err: ErrServerError},
		}}

		cancel()
		_, err := CompleteWithRetry(ctx, client, "prompt", 3, time.Second)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, client.calls)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"timeout", ErrTimeout, true},
		{"rate limited", ErrRateLimited, true},
		{"server error", ErrServerError, true},
		{"connection failed", ErrConnectionFailed, true},
		{"wrapped server error", fmt.Errorf("call failed: %w", ErrServerError), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"client error", ErrClientError, false},
		{"malformed response", ErrMalformedResponse, false},
		{"generic error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}
