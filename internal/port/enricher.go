// Package port defines the interfaces between the extraction engine and its
// pluggable providers.
package port

import (
	"context"

	"vocalis/internal/domain"
)

// EnrichInput carries one utterance to a language-model provider along with
// the field keys it is allowed to return.
type EnrichInput struct {
	Text         string
	DocumentType domain.DocumentType
	FieldKeys    []string
	Labels       map[string]string
}

// EnrichOutput is a provider's parsed response. Fields holds whatever the
// model returned; the extractor rejects payloads that declare keys outside
// the input's FieldKeys. Empty values mean "not mentioned".
type EnrichOutput struct {
	Fields    map[string]string
	ModelUsed string
}

// Enricher extracts field values from free text using a language model.
// Implementations must honor the context deadline.
type Enricher interface {
	Enrich(ctx context.Context, input EnrichInput) (*EnrichOutput, error)
	Name() string
}
