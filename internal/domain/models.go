package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"vocalis/internal/record"
)

// FieldDefinition describes one atomic piece of information a document type
// must contain. Definitions are immutable after registry load.
type FieldDefinition struct {
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	Tier     ImportanceTier `json:"tier"`
	Format   *regexp.Regexp `json:"-"`
	// FormatHint is the human explanation surfaced when Format fails.
	FormatHint string   `json:"format_hint,omitempty"`
	Examples   []string `json:"examples,omitempty"`
}

// DocumentSchema is the ordered field list defining one document type. Field
// order is the order a clinician would naturally be asked, and it is the
// tie-break for missing-field prioritization within a tier.
type DocumentSchema struct {
	Type   DocumentType      `json:"document_type"`
	Title  string            `json:"title"`
	Fields []FieldDefinition `json:"fields"`
}

// FieldKeys returns the schema's field keys in schema order.
func (s *DocumentSchema) FieldKeys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// FieldByKey looks up a field definition by key.
func (s *DocumentSchema) FieldByKey(key string) (*FieldDefinition, bool) {
	for i := range s.Fields {
		if s.Fields[i].Key == key {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// CriticalFields returns the schema's critical-tier fields in schema order.
func (s *DocumentSchema) CriticalFields() []FieldDefinition {
	var out []FieldDefinition
	for _, f := range s.Fields {
		if f.Tier == TierCritical {
			out = append(out, f)
		}
	}
	return out
}

// Session is the accumulating per-conversation state tying turns together.
// It is owned by the dialogue layer; one session per conversation.
type Session struct {
	ID           uuid.UUID     `json:"id"`
	DocumentType DocumentType  `json:"document_type"`
	Record       record.Record `json:"record"`
	State        SessionState  `json:"state"`
	TurnCount    int           `json:"turn_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
