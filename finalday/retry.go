package finalday

import (
	"context"
	"time"

	"voyago/apperr"
)

// withRetry runs fn up to attempts times, sleeping delay between tries.
// Only version conflicts are retried; every other outcome returns at once.
// The attempt count lives here, not on any request object.
func withRetry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = fn()
		if err == nil || !apperr.IsConflict(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return apperr.Wrap(ctx.Err(), "operation cancelled")
		}
	}
	return err
}
