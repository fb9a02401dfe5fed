package httpclient

import (
	nethttp "net/http"
	"time"
)

const (
	// backoffBase is the first retry delay; each subsequent attempt doubles it.
	backoffBase = 1 * time.Second
	// maxRetryAfterSeconds bounds how long the client is willing to honor a
	// server-provided Retry-After before surfacing the rate limit instead.
	maxRetryAfterSeconds = 60
)

// retryDecision is computed per attempt and not persisted.
type retryDecision struct {
	retry bool
	delay time.Duration
}

// decideRetry decides whether the attempt should be retried and how long to
// wait first. Rules, in order:
//
//  1. Attempts are capped at maxRetries+1.
//  2. Network failures retry with exponential backoff.
//  3. Rate limits are honored only when Retry-After is in (0, 60] seconds;
//     a missing hint or one beyond the bound surfaces immediately rather
//     than stalling the caller.
//  4. 503 responses retry with the same backoff as network failures.
//  5. Validation and all other API errors are not transient and never retry.
func decideRetry(attempt int, cl classification, maxRetries int) retryDecision {
	if attempt >= maxRetries+1 {
		return retryDecision{}
	}

	switch cl.kind {
	case kindNetwork:
		return retryDecision{retry: true, delay: backoffDelay(attempt)}
	case kindRateLimit:
		if cl.retryAfter > 0 && cl.retryAfter <= maxRetryAfterSeconds {
			return retryDecision{retry: true, delay: time.Duration(cl.retryAfter) * time.Second}
		}
		return retryDecision{}
	case kindAPI:
		if cl.statusCode == nethttp.StatusServiceUnavailable {
			return retryDecision{retry: true, delay: backoffDelay(attempt)}
		}
	}
	return retryDecision{}
}

// backoffDelay returns base * 2^(attempt-1) for the 1-based attempt number.
func backoffDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	// Cap the shift to avoid overflow; the retry cap keeps real attempts
	// far below this.
	if attempt > 20 {
		attempt = 20
	}
	return backoffBase * time.Duration(1<<(attempt-1))
}
