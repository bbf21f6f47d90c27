package runtime

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/canopyhq/canopy/pkg/domain"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 50 * time.Millisecond
)

// withRetry runs a store operation up to retryAttempts times with
// doubling backoff and jitter. Exhausted retries surface as
// ErrStoreUnavailable so the boundary can map them to 503.
func (e *Engine) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error
	delay := retryBaseDelay
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < retryAttempts {
			if e.metrics != nil {
				e.metrics.StoreRetries.Inc()
			}
			e.logger.Warn("store operation failed, retrying",
				"op", op,
				"attempt", attempt,
				"err", lastErr,
			)
			jitter := time.Duration(rand.Int63n(int64(delay) / 2))
			select {
			case <-time.After(delay + jitter):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}
	return fmt.Errorf("%w: %s failed after %d attempts: %v", domain.ErrStoreUnavailable, op, retryAttempts, lastErr)
}
