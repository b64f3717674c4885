package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"vocalis/internal/dialogue"
	"vocalis/internal/domain"
	"vocalis/internal/formatter"
	"vocalis/internal/record"
	"vocalis/internal/schema"
	"vocalis/internal/session"
	"vocalis/internal/validator"
)

// StartSessionInput is the DTO for starting a collection session.
type StartSessionInput struct {
	DocumentType string `json:"document_type" binding:"required"`
}

// SubmitTurnInput is the DTO for one dictated utterance.
type SubmitTurnInput struct {
	Text string `json:"text" binding:"required"`
}

// SetFieldInput is the DTO for an explicit field edit. An empty value is
// legal and blanks the field, which can drop a complete session back to
// collecting.
type SetFieldInput struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SessionView is the read model returned to clients. The record snapshot is
// a copy; mutating it cannot touch live session state.
type SessionView struct {
	Session    domain.Session   `json:"session"`
	Validation validator.Result `json:"validation"`
}

// TurnOutput is the result of one conversation turn.
type TurnOutput struct {
	Session    domain.Session   `json:"session"`
	Captured   []string         `json:"captured"`
	Validation validator.Result `json:"validation"`
	Prompt     string           `json:"prompt"`
}

// ExportOutput is a rendered document.
type ExportOutput struct {
	DocumentType domain.DocumentType `json:"document_type"`
	Content      string              `json:"content"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

// SessionService defines the conversation lifecycle contract.
type SessionService interface {
	Start(ctx context.Context, input StartSessionInput) (*TurnOutput, error)
	SubmitTurn(ctx context.Context, id uuid.UUID, input SubmitTurnInput) (*TurnOutput, error)
	SetField(ctx context.Context, id uuid.UUID, input SetFieldInput) (*SessionView, error)
	Get(ctx context.Context, id uuid.UUID) (*SessionView, error)
	Export(ctx context.Context, id uuid.UUID) (*ExportOutput, error)
	Discard(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	registry   *schema.Registry
	store      *session.Store
	controller *dialogue.Controller
	formatter  *formatter.Formatter
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(
	registry *schema.Registry,
	store *session.Store,
	controller *dialogue.Controller,
	fm *formatter.Formatter,
) SessionService {
	return &sessionService{
		registry:   registry,
		store:      store,
		controller: controller,
		formatter:  fm,
	}
}

func (s *sessionService) Start(ctx context.Context, input StartSessionInput) (*TurnOutput, error) {
	docType := domain.DocumentType(input.DocumentType)
	sch, err := s.registry.Get(docType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		ID:           uuid.New(),
		DocumentType: docType,
		Record:       record.New(sch.FieldKeys()),
		State:        domain.SessionStateCollecting,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.store.Put(sess)
	log.Printf("service.Session: started session %s (%s)", sess.ID, docType)

	res := validator.Validate(sess.Record, sch)
	return &TurnOutput{
		Session:    snapshot(sess),
		Validation: res,
		Prompt:     dialogue.OpeningPrompt(sch, res),
	}, nil
}

func (s *sessionService) SubmitTurn(ctx context.Context, id uuid.UUID, input SubmitTurnInput) (*TurnOutput, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	sch, err := s.registry.Get(entry.Session.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("service.SubmitTurn: %w", err)
	}

	// The lock spans the whole turn so concurrent turns on one session
	// serialize instead of interleaving their merges.
	entry.Lock()
	defer entry.Unlock()

	result := s.controller.HandleTurn(ctx, entry.Session, sch, input.Text)
	return &TurnOutput{
		Session:    snapshot(entry.Session),
		Captured:   result.Captured,
		Validation: result.Validation,
		Prompt:     result.Prompt,
	}, nil
}

func (s *sessionService) SetField(ctx context.Context, id uuid.UUID, input SetFieldInput) (*SessionView, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	sch, err := s.registry.Get(entry.Session.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("service.SetField: %w", err)
	}
	if _, ok := sch.FieldByKey(input.Field); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, input.Field)
	}

	entry.Lock()
	defer entry.Unlock()

	entry.Session.Record.Set(input.Field, input.Value)
	res := s.controller.Revalidate(entry.Session, sch)
	return &SessionView{Session: snapshot(entry.Session), Validation: res}, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	sch, err := s.registry.Get(entry.Session.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("service.Get: %w", err)
	}

	entry.Lock()
	defer entry.Unlock()

	return &SessionView{
		Session:    snapshot(entry.Session),
		Validation: validator.Validate(entry.Session.Record, sch),
	}, nil
}

func (s *sessionService) Export(ctx context.Context, id uuid.UUID) (*ExportOutput, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	sch, err := s.registry.Get(entry.Session.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("service.Export: %w", err)
	}

	entry.Lock()
	defer entry.Unlock()

	content, err := s.formatter.Format(entry.Session.Record, sch)
	if err != nil {
		return nil, err
	}
	log.Printf("service.Session: exported document for session %s (%s)", id, sch.Type)
	return &ExportOutput{
		DocumentType: sch.Type,
		Content:      content,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

func (s *sessionService) Discard(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Get(id); err != nil {
		return err
	}
	s.store.Delete(id)
	log.Printf("service.Session: discarded session %s", id)
	return nil
}

// snapshot deep-copies a session so callers never share the live record.
func snapshot(sess *domain.Session) domain.Session {
	out := *sess
	out.Record = sess.Record.Clone()
	return out
}
