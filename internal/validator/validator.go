// Package validator checks an accumulated record against its schema. It is a
// pure function of the record: no state, no side effects, never an error —
// all user-facing failure is data in the Result.
package validator

import (
	"fmt"
	"sort"

	"vocalis/internal/domain"
	"vocalis/internal/record"
)

// FieldError reports a field whose value is present but fails its format
// rule. A wrong-format value is not missing; it gets a distinct, correctable
// message.
type FieldError struct {
	Field  string `json:"field"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// Result is the validation snapshot of one record.
type Result struct {
	// Missing lists absent or blank fields, ordered by importance tier
	// (critical, high, medium) and schema order within a tier.
	Missing      []domain.FieldDefinition `json:"missing"`
	FormatErrors []FieldError             `json:"format_errors"`
	// IsComplete is true iff no critical field is missing and no field has a
	// format error. High and medium fields never block completion.
	IsComplete bool `json:"is_complete"`
}

// MissingKeys returns the keys of the missing fields, in priority order.
func (r *Result) MissingKeys() []string {
	keys := make([]string, len(r.Missing))
	for i, f := range r.Missing {
		keys[i] = f.Key
	}
	return keys
}

// NextField returns the highest-priority missing field, or nil when nothing
// is missing.
func (r *Result) NextField() *domain.FieldDefinition {
	if len(r.Missing) == 0 {
		return nil
	}
	return &r.Missing[0]
}

// Validate checks the record field by field in schema order.
func Validate(rec record.Record, sch *domain.DocumentSchema) Result {
	var res Result
	criticalMissing := false

	for _, f := range sch.Fields {
		value, populated := rec.Value(f.Key)
		if !populated || value == "" {
			res.Missing = append(res.Missing, f)
			if f.Tier == domain.TierCritical {
				criticalMissing = true
			}
			continue
		}
		if f.Format != nil && !f.Format.MatchString(value) {
			res.FormatErrors = append(res.FormatErrors, FieldError{
				Field:  f.Key,
				Label:  f.Label,
				Reason: fmt.Sprintf("la valeur « %s » n'a pas le format attendu : %s", value, f.FormatHint),
			})
		}
	}

	// Stable sort keeps schema order within a tier.
	sort.SliceStable(res.Missing, func(i, j int) bool {
		return res.Missing[i].Tier.Rank() < res.Missing[j].Tier.Rank()
	})

	res.IsComplete = !criticalMissing && len(res.FormatErrors) == 0
	return res
}
