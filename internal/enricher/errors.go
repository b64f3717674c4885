package enricher

import (
	"fmt"
	"strconv"
	"time"
)

// defaultRetryAfter is used when a provider rate-limits without a usable
// Retry-After header. It sets how long the fallback chain keeps the
// provider's circuit open.
const defaultRetryAfter = 60 * time.Second

// RateLimitError indicates an enrichment provider returned HTTP 429. Turns
// keep flowing on the deterministic tier while the provider cools down.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. A non-positive retryAfterSecs
// falls back to defaultRetryAfter.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := defaultRetryAfter
	if retryAfterSecs > 0 {
		retryAfter = time.Duration(retryAfterSecs) * time.Second
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: retryAfter,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a plain integer (the HTTP-date form
// is treated as absent; the default cooldown applies).
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
