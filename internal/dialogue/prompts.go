package dialogue

import (
	"strings"

	"vocalis/internal/domain"
	"vocalis/internal/validator"
)

// OpeningPrompt greets a freshly started session and asks for the first
// field right away instead of waiting for the clinician to speak first.
func OpeningPrompt(sch *domain.DocumentSchema, res validator.Result) string {
	return "Commençons la saisie : " + sch.Title + ". " + buildPrompt(sch, nil, res)
}

// buildPrompt assembles the assistant reply. One request per turn: even with
// ten fields missing, the clinician is asked for the single highest-priority
// one.
func buildPrompt(sch *domain.DocumentSchema, captured []string, res validator.Result) string {
	var b strings.Builder

	if len(captured) > 0 {
		labels := make([]string, 0, len(captured))
		for _, key := range captured {
			if f, ok := sch.FieldByKey(key); ok {
				labels = append(labels, strings.ToLower(f.Label))
			}
		}
		b.WriteString("J'ai bien noté : ")
		b.WriteString(strings.Join(labels, ", "))
		b.WriteString(". ")
	}

	if len(res.FormatErrors) > 0 {
		fe := res.FormatErrors[0]
		b.WriteString("Attention, pour « ")
		b.WriteString(strings.ToLower(fe.Label))
		b.WriteString(" », ")
		b.WriteString(fe.Reason)
		b.WriteString(". ")
	}

	if res.IsComplete {
		b.WriteString("Toutes les informations essentielles sont réunies. Vous pouvez générer le document, ou continuer à compléter les champs restants.")
		return b.String()
	}

	next := res.NextField()
	if next == nil {
		// Only format errors block completion.
		b.WriteString("Pouvez-vous corriger cette valeur ?")
		return b.String()
	}

	b.WriteString("Il me manque encore : ")
	b.WriteString(next.Label)
	if len(next.Examples) > 0 {
		b.WriteString(" (par exemple : ")
		b.WriteString(strings.Join(next.Examples, ", "))
		b.WriteString(")")
	}
	b.WriteString(".")
	return b.String()
}
