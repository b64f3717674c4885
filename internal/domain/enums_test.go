package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vocalis/internal/domain"
)

func TestSessionStateValues(t *testing.T) {
	assert.Equal(t, domain.SessionState("collecting"), domain.SessionStateCollecting)
	assert.Equal(t, domain.SessionState("complete"), domain.SessionStateComplete)
}

func TestTierRank_CriticalFirst(t *testing.T) {
	assert.Less(t, domain.TierCritical.Rank(), domain.TierHigh.Rank())
	assert.Less(t, domain.TierHigh.Rank(), domain.TierMedium.Rank())
}

func TestTierRank_UnknownSortsLast(t *testing.T) {
	unknown := domain.ImportanceTier("cosmetic")
	assert.Greater(t, unknown.Rank(), domain.TierMedium.Rank())
}
