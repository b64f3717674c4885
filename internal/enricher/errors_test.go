package enricher_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vocalis/internal/enricher"
)

func TestNewRateLimitError_Defaults(t *testing.T) {
	base := errors.New("429 too many requests")
	err := enricher.NewRateLimitError("claude", base, 0)

	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.Equal(t, "claude", err.Provider)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "claude rate limited")
}

func TestNewRateLimitError_ExplicitRetryAfter(t *testing.T) {
	err := enricher.NewRateLimitError("openai", errors.New("slow down"), 30)

	assert.Equal(t, 30*time.Second, err.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, enricher.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, enricher.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 120, enricher.ParseRetryAfterHeader("120"))
}
