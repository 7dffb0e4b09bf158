package reasoning

import (
	"context"
	"fmt"
	"time"

	"github.com/gitforge/bossquest/internal/logger"
)

// Retry defaults
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

// CompleteWithRetry calls the client up to maxAttempts times, sleeping delay
// between attempts. Only retryable failure classes are retried; anything else
// is returned immediately.
func CompleteWithRetry(ctx context.Context, client Client, prompt string, maxAttempts int, delay time.Duration) (string, error) {
	log := logger.FromContext(ctx)

	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := client.Complete(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return "", err
		}

		if attempt < maxAttempts {
			log.Warn("Completion attempt failed, retrying",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"error", err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", maxAttempts, lastErr)
}
