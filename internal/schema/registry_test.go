package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vocalis/internal/domain"
	"vocalis/internal/schema"
)

func TestRegistry_GetKnownTypes(t *testing.T) {
	r := schema.NewRegistry()

	for _, dt := range []domain.DocumentType{
		domain.DocumentTypePrescription,
		domain.DocumentTypeScanReport,
		domain.DocumentTypeMRIReport,
		domain.DocumentTypeUltrasoundReport,
	} {
		s, err := r.Get(dt)
		assert.NoError(t, err, string(dt))
		assert.Equal(t, dt, s.Type)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Fields)
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	r := schema.NewRegistry()

	s, err := r.Get("fax")

	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}

func TestRegistry_PrescriptionAllCritical(t *testing.T) {
	r := schema.NewRegistry()

	crit, err := r.CriticalFields(domain.DocumentTypePrescription)

	assert.NoError(t, err)
	sch, _ := r.Get(domain.DocumentTypePrescription)
	assert.Len(t, crit, len(sch.Fields))
}

func TestRegistry_FieldKeysUnique(t *testing.T) {
	r := schema.NewRegistry()

	for _, s := range r.All() {
		seen := map[string]bool{}
		for _, k := range s.FieldKeys() {
			assert.False(t, seen[k], "duplicate key %s in %s", k, s.Type)
			seen[k] = true
		}
	}
}

func TestRegistry_TiersAreValid(t *testing.T) {
	r := schema.NewRegistry()

	for _, s := range r.All() {
		for _, f := range s.Fields {
			switch f.Tier {
			case domain.TierCritical, domain.TierHigh, domain.TierMedium:
			default:
				t.Errorf("%s.%s has unexpected tier %q", s.Type, f.Key, f.Tier)
			}
		}
	}
}

func TestRegistry_AllPreservesOrder(t *testing.T) {
	r := schema.NewRegistry()

	all := r.All()
	assert.Len(t, all, 4)
	assert.Equal(t, domain.DocumentTypePrescription, all[0].Type)
}
