// Package httputil provides retry helpers for the PyPI client.
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError]:
//
//   - connection errors and timeouts
//   - 5xx server errors
//
// Anything else, including 404 and 429, is returned on the first attempt.
// The delay doubles after every failure, capped at [MaxDelay]:
//
//	err := httputil.Retry(ctx, httputil.DefaultAttempts, httputil.DefaultDelay, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
package httputil
