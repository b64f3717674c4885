// Package formatter renders a completed record as the final text document.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"vocalis/internal/domain"
	"vocalis/internal/record"
	"vocalis/internal/validator"
)

// notProvided marks optional fields left empty in the rendered document. The
// marker makes the omission visible instead of silently dropping the line.
const notProvided = "Non renseigné"

// Formatter renders documents. The clock is injectable for deterministic
// output in tests.
type Formatter struct {
	now func() time.Time
}

func New() *Formatter {
	return &Formatter{now: time.Now}
}

func NewWithClock(now func() time.Time) *Formatter {
	return &Formatter{now: now}
}

// Format renders the record as a labelled French document. It re-validates
// the record itself rather than trusting the caller's session state, and
// refuses to render an incomplete record.
func (f *Formatter) Format(rec record.Record, sch *domain.DocumentSchema) (string, error) {
	res := validator.Validate(rec, sch)
	if !res.IsComplete {
		return "", fmt.Errorf("%w: missing %s", domain.ErrIncompleteExport, strings.Join(res.MissingKeys(), ", "))
	}

	var b strings.Builder
	b.WriteString(strings.ToUpper(sch.Title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(sch.Title))))
	b.WriteString("\n\n")
	b.WriteString("Date : ")
	b.WriteString(f.now().Format("02/01/2006"))
	b.WriteString("\n\n")

	for _, field := range sch.Fields {
		value, populated := rec.Value(field.Key)
		if !populated || value == "" {
			value = notProvided
		}
		b.WriteString(field.Label)
		b.WriteString(" : ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	return b.String(), nil
}
