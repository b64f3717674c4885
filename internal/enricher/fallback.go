package enricher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"vocalis/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackEnricher tries providers in order, skipping those with open
// circuits. It implements port.Enricher.
type FallbackEnricher struct {
	enrichers []port.Enricher
	circuits  []*circuitState
}

// NewFallbackEnricher creates a FallbackEnricher from an ordered list of providers.
func NewFallbackEnricher(enrichers []port.Enricher) *FallbackEnricher {
	circuits := make([]*circuitState, len(enrichers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackEnricher{
		enrichers: enrichers,
		circuits:  circuits,
	}
}

func (f *FallbackEnricher) Name() string { return "fallback" }

func (f *FallbackEnricher) Enrich(ctx context.Context, input port.EnrichInput) (*port.EnrichOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, e := range f.enrichers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("enricher.FallbackEnricher: skipping %s (circuit open until %s)", e.Name(), resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := e.Enrich(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("enricher.FallbackEnricher: %s failed: %v", e.Name(), err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All providers were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all providers rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}
