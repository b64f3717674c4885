// Package schema holds the static catalog of document types. The catalog is
// assembled once at package init and is read-only afterwards.
package schema

import (
	"fmt"

	"vocalis/internal/domain"
)

// Registry is a read-only lookup of document schemas.
type Registry struct {
	schemas map[domain.DocumentType]*domain.DocumentSchema
	order   []domain.DocumentType
}

// NewRegistry builds the registry with all built-in document types.
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[domain.DocumentType]*domain.DocumentSchema)}
	for _, s := range builtinSchemas() {
		r.schemas[s.Type] = s
		r.order = append(r.order, s.Type)
	}
	return r
}

// Get returns the schema for a document type, or ErrUnknownDocumentType.
func (r *Registry) Get(docType domain.DocumentType) (*domain.DocumentSchema, error) {
	s, ok := r.schemas[docType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, docType)
	}
	return s, nil
}

// CriticalFields returns the critical-tier fields of a document type in
// schema order.
func (r *Registry) CriticalFields(docType domain.DocumentType) ([]domain.FieldDefinition, error) {
	s, err := r.Get(docType)
	if err != nil {
		return nil, err
	}
	return s.CriticalFields(), nil
}

// All returns every registered schema in registration order.
func (r *Registry) All() []*domain.DocumentSchema {
	out := make([]*domain.DocumentSchema, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.schemas[t])
	}
	return out
}
