// Package extractor turns one free-text utterance into field candidates for
// a document schema. Extraction runs in two tiers: a deterministic pass of
// regex and lexicon recognizers, then an optional language-model enrichment
// pass. Extraction never fails a turn — when enrichment is unavailable or
// returns garbage, the deterministic results stand alone.
package extractor

import (
	"context"
	"log"
	"strings"
	"time"

	"vocalis/internal/domain"
	"vocalis/internal/port"
	"vocalis/internal/record"
)

const defaultEnrichTimeout = 8 * time.Second

// Extractor is safe for concurrent use.
type Extractor struct {
	enricher port.Enricher
	timeout  time.Duration
}

// New builds an extractor. A nil enricher disables the enrichment tier, which
// is a supported degraded mode, not an error.
func New(enricher port.Enricher, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = defaultEnrichTimeout
	}
	return &Extractor{enricher: enricher, timeout: timeout}
}

// Extract runs both tiers over the utterance and returns the merged
// candidates. Only keys defined by the schema can appear in the result.
func (x *Extractor) Extract(ctx context.Context, text string, sch *domain.DocumentSchema) record.Partial {
	found := x.deterministic(text, sch)

	enriched := x.enrich(ctx, text, sch)
	for key, value := range enriched {
		// The model reads context the recognizers cannot, so its value
		// wins for the keys it fills this turn.
		found[key] = value
	}
	return found
}

func (x *Extractor) deterministic(text string, sch *domain.DocumentSchema) record.Partial {
	found := make(record.Partial)
	for _, f := range sch.Fields {
		rec, ok := recognizers[f.Key]
		if !ok {
			continue
		}
		if value, hit := rec(text); hit {
			found[f.Key] = value
		}
	}
	return found
}

// enrich calls the language model under a deadline and defensively screens
// its output. Any failure is logged and swallowed: the caller always gets a
// usable (possibly empty) candidate set.
func (x *Extractor) enrich(ctx context.Context, text string, sch *domain.DocumentSchema) record.Partial {
	if x.enricher == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	labels := make(map[string]string, len(sch.Fields))
	for _, f := range sch.Fields {
		labels[f.Key] = f.Label
	}
	out, err := x.enricher.Enrich(ctx, port.EnrichInput{
		Text:         text,
		DocumentType: sch.Type,
		FieldKeys:    sch.FieldKeys(),
		Labels:       labels,
	})
	if err != nil {
		log.Printf("extractor: enrichment unavailable, continuing with deterministic tier: %v", err)
		return nil
	}

	found := make(record.Partial, len(out.Fields))
	for key, value := range out.Fields {
		if _, ok := sch.FieldByKey(key); !ok {
			// A single unknown key means the model did not follow the
			// contract; nothing else in the payload can be trusted.
			log.Printf("extractor: discarding enrichment from %s, unknown key %q", out.ModelUsed, key)
			return nil
		}
		if value = strings.TrimSpace(value); isSentinel(value) {
			continue
		}
		found[key] = value
	}
	return found
}

// isSentinel reports model spellings of "no value" that must never reach the
// record, where they would masquerade as real data.
func isSentinel(value string) bool {
	switch strings.ToLower(value) {
	case "", "none", "null", "n/a", "na", "non renseigné", "inconnu":
		return true
	}
	return false
}
