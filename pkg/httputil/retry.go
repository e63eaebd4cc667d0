package httputil

import (
	"context"
	"errors"
	"time"
)

// Defaults used by the PyPI client. MaxDelay caps the doubling so an
// interactive query never stalls longer than a few seconds between tries.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	MaxDelay        = 8 * time.Second
)

// RetryableError marks a transient failure, such as a connection reset or
// a 5xx from PyPI, that [Retry] may attempt again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is or wraps a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry calls fn until it succeeds, fails with a non-retryable error, or
// attempts run out, in which case the last error is returned. The wait
// starts at delay and doubles up to [MaxDelay]. A cancelled ctx ends the
// wait with ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for left := max(attempts, 1); ; left-- {
		if err = fn(); err == nil || !IsRetryable(err) || left == 1 {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay = nextDelay(delay)
	}
}

func nextDelay(d time.Duration) time.Duration {
	return min(d*2, MaxDelay)
}
