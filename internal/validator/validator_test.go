package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vocalis/internal/domain"
	"vocalis/internal/record"
	"vocalis/internal/schema"
	"vocalis/internal/validator"
)

func prescriptionSchema(t *testing.T) *domain.DocumentSchema {
	t.Helper()
	sch, err := schema.NewRegistry().Get(domain.DocumentTypePrescription)
	assert.NoError(t, err)
	return sch
}

func mriSchema(t *testing.T) *domain.DocumentSchema {
	t.Helper()
	sch, err := schema.NewRegistry().Get(domain.DocumentTypeMRIReport)
	assert.NoError(t, err)
	return sch
}

func fullPrescription(sch *domain.DocumentSchema) record.Record {
	rec := record.New(sch.FieldKeys())
	rec.Set("patientName", "Jean Dupont")
	rec.Set("patientAge", "45 ans")
	rec.Set("diagnosis", "hypertension")
	rec.Set("medication", "Lisinopril")
	rec.Set("dosage", "10mg une fois par jour")
	rec.Set("duration", "3 mois")
	rec.Set("specialInstructions", "à jeun")
	return rec
}

func TestValidate_EmptyRecordListsEverything(t *testing.T) {
	sch := prescriptionSchema(t)
	rec := record.New(sch.FieldKeys())

	res := validator.Validate(rec, sch)

	assert.False(t, res.IsComplete)
	assert.Len(t, res.Missing, len(sch.Fields))
	assert.Empty(t, res.FormatErrors)
	assert.Equal(t, "patientName", res.NextField().Key)
}

func TestValidate_CompleteRecord(t *testing.T) {
	sch := prescriptionSchema(t)
	rec := fullPrescription(sch)

	res := validator.Validate(rec, sch)

	assert.True(t, res.IsComplete)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.FormatErrors)
	assert.Nil(t, res.NextField())
}

func TestValidate_BlankCountsAsMissing(t *testing.T) {
	sch := prescriptionSchema(t)
	rec := fullPrescription(sch)
	rec.Set("diagnosis", "")

	res := validator.Validate(rec, sch)

	assert.False(t, res.IsComplete)
	assert.Equal(t, []string{"diagnosis"}, res.MissingKeys())
}

func TestValidate_FormatErrorBlocksCompletion(t *testing.T) {
	sch := prescriptionSchema(t)
	rec := fullPrescription(sch)
	rec.Set("patientAge", "quarante-cinq")

	res := validator.Validate(rec, sch)

	assert.False(t, res.IsComplete)
	assert.Empty(t, res.Missing)
	assert.Len(t, res.FormatErrors, 1)
	assert.Equal(t, "patientAge", res.FormatErrors[0].Field)
	assert.Contains(t, res.FormatErrors[0].Reason, "quarante-cinq")
}

func TestValidate_FormatNotCheckedWhileMissing(t *testing.T) {
	sch := prescriptionSchema(t)
	rec := record.New(sch.FieldKeys())

	res := validator.Validate(rec, sch)

	// An absent field is missing, never a format error.
	assert.Empty(t, res.FormatErrors)
}

func TestValidate_MissingOrderedByTierThenSchema(t *testing.T) {
	sch := mriSchema(t)
	rec := record.New(sch.FieldKeys())

	res := validator.Validate(rec, sch)

	keys := res.MissingKeys()
	// Critical fields first in schema order, then high, then medium.
	assert.Equal(t, []string{
		"patientName", "patientAge", "examRegion", "findings", "conclusion",
		"clinicalIndication", "sequences",
		"magneticFieldStrength",
	}, keys)
}

func TestValidate_AdvisoryTiersDoNotBlock(t *testing.T) {
	sch := mriSchema(t)
	rec := record.New(sch.FieldKeys())
	rec.Set("patientName", "Marc Dumont")
	rec.Set("patientAge", "62 ans")
	rec.Set("examRegion", "rachis lombaire")
	rec.Set("findings", "discopathie L4-L5")
	rec.Set("conclusion", "pas de compression radiculaire")

	res := validator.Validate(rec, sch)

	assert.True(t, res.IsComplete)
	// Advisory fields are still reported as missing.
	assert.Equal(t, []string{"clinicalIndication", "sequences", "magneticFieldStrength"}, res.MissingKeys())
}

func TestValidate_TeslaFormat(t *testing.T) {
	sch := mriSchema(t)
	rec := record.New(sch.FieldKeys())
	rec.Set("magneticFieldStrength", "beaucoup")

	res := validator.Validate(rec, sch)

	assert.Len(t, res.FormatErrors, 1)
	assert.Equal(t, "magneticFieldStrength", res.FormatErrors[0].Field)

	rec.Set("magneticFieldStrength", "1.5T")
	res = validator.Validate(rec, sch)
	assert.Empty(t, res.FormatErrors)
}
