// Package httpclient implements the request-execution pipeline beneath the
// Atlaspay resource layer: header merging, bearer-token injection, retry
// with exponential backoff, rate-limit cooperation, and typed error
// translation.
//
// Retries
//   - Total transport calls are bounded by maxRetries+1.
//   - Network failures and 503 responses retry with exponential backoff:
//     delay = 1s * 2^(attempt-1).
//   - 429 responses retry after exactly the server's Retry-After value,
//     but only when it is in (0, 60] seconds; otherwise the rate limit is
//     surfaced immediately.
//   - 422 responses and all other 4xx/5xx responses are not retried.
//
// Failures surface as one of the typed errors in errors.go: network, API,
// validation (with per-field messages), rate limit (with the retry-after
// hint), or authentication. Backoff sleeps respect context cancellation.
//
// Each execute call is synchronous and blocks for the duration of all
// attempts. Request payloads are marshaled once and re-sent unchanged;
// idempotency of retried operations is the caller's responsibility.
package httpclient
