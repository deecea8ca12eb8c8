// Package httputil provides HTTP helpers shared by the document fetcher.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only for errors
// wrapped in [RetryableError]. Everything else is returned immediately:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetchOnce(ctx)
//	})
//
// # Status classification
//
// [CheckStatus] maps an HTTP status code to nil, [ErrNotFound], or an
// [ErrNetwork]-wrapped error. 5xx responses and 429 are marked retryable;
// other 4xx responses are permanent.
package httputil
