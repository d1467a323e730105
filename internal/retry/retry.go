package retry

import (
	"context"
	"time"
)

type Fn func() error

// Do runs fn up to attempts times, doubling wait between tries. Sleeping
// respects ctx so a cancelled run stops retrying promptly.
func Do(ctx context.Context, attempts int, wait time.Duration, fn Fn) error {

	var err error

	for i := 0; i < attempts; i++ {

		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		wait = wait * 2
	}

	return err
}
