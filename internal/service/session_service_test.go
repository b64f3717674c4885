package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"vocalis/internal/dialogue"
	"vocalis/internal/domain"
	"vocalis/internal/extractor"
	"vocalis/internal/formatter"
	"vocalis/internal/schema"
	"vocalis/internal/service"
	"vocalis/internal/session"
)

func newSessionService() service.SessionService {
	registry := schema.NewRegistry()
	store := session.NewStore(time.Minute, time.Minute)
	controller := dialogue.NewController(extractor.New(nil, 0))
	return service.NewSessionService(registry, store, controller, formatter.New())
}

func TestSessionService_StartUnknownType(t *testing.T) {
	svc := newSessionService()

	out, err := svc.Start(context.Background(), service.StartSessionInput{DocumentType: "fax"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}

func TestSessionService_StartOpensCollecting(t *testing.T) {
	svc := newSessionService()

	out, err := svc.Start(context.Background(), service.StartSessionInput{DocumentType: "prescription"})

	assert.NoError(t, err)
	assert.Equal(t, domain.SessionStateCollecting, out.Session.State)
	assert.Equal(t, 0, out.Session.TurnCount)
	assert.False(t, out.Validation.IsComplete)
	assert.Contains(t, out.Prompt, "Nom du patient")
}

func TestSessionService_FullConversation(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()

	started, err := svc.Start(ctx, service.StartSessionInput{DocumentType: "prescription"})
	assert.NoError(t, err)
	id := started.Session.ID

	// Export is refused while critical fields are missing.
	_, err = svc.Export(ctx, id)
	assert.ErrorIs(t, err, domain.ErrIncompleteExport)

	turn, err := svc.SubmitTurn(ctx, id, service.SubmitTurnInput{Text: "Patient Jean Dupont, 45 ans, hypertension"})
	assert.NoError(t, err)
	assert.False(t, turn.Validation.IsComplete)

	turn, err = svc.SubmitTurn(ctx, id, service.SubmitTurnInput{Text: "Lisinopril 10mg une fois par jour, 3 mois, à jeun"})
	assert.NoError(t, err)
	assert.True(t, turn.Validation.IsComplete)
	assert.Equal(t, domain.SessionStateComplete, turn.Session.State)

	out, err := svc.Export(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentTypePrescription, out.DocumentType)
	assert.Contains(t, out.Content, "Jean Dupont")
	assert.Contains(t, out.Content, "Lisinopril")
}

func TestSessionService_UnknownSession(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.SubmitTurn(ctx, id, service.SubmitTurnInput{Text: "bonjour"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, svc.Discard(ctx, id), domain.ErrSessionNotFound)
}

func TestSessionService_SetFieldUnknownKey(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()
	started, _ := svc.Start(ctx, service.StartSessionInput{DocumentType: "prescription"})

	view, err := svc.SetField(ctx, started.Session.ID, service.SetFieldInput{Field: "bloodType", Value: "O+"})

	assert.Nil(t, view)
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestSessionService_ClearingCriticalFieldRevertsCompletion(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()
	started, _ := svc.Start(ctx, service.StartSessionInput{DocumentType: "prescription"})
	id := started.Session.ID

	svc.SubmitTurn(ctx, id, service.SubmitTurnInput{Text: "Patient Jean Dupont, 45 ans, hypertension"})
	turn, _ := svc.SubmitTurn(ctx, id, service.SubmitTurnInput{Text: "Lisinopril 10mg une fois par jour, 3 mois, à jeun"})
	assert.True(t, turn.Validation.IsComplete)

	view, err := svc.SetField(ctx, id, service.SetFieldInput{Field: "medication", Value: ""})

	assert.NoError(t, err)
	assert.False(t, view.Validation.IsComplete)
	assert.Equal(t, domain.SessionStateCollecting, view.Session.State)

	_, err = svc.Export(ctx, id)
	assert.ErrorIs(t, err, domain.ErrIncompleteExport)
}

func TestSessionService_Discard(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()
	started, _ := svc.Start(ctx, service.StartSessionInput{DocumentType: "scan_report"})

	assert.NoError(t, svc.Discard(ctx, started.Session.ID))

	_, err := svc.Get(ctx, started.Session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_SnapshotIsACopy(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()
	started, _ := svc.Start(ctx, service.StartSessionInput{DocumentType: "prescription"})
	id := started.Session.ID

	turn, _ := svc.SubmitTurn(ctx, id, service.SubmitTurnInput{Text: "Patient Jean Dupont"})
	turn.Session.Record.Set("patientName", "tampered")

	view, _ := svc.Get(ctx, id)
	v, _ := view.Session.Record.Value("patientName")
	assert.Equal(t, "Jean Dupont", v)
}

func TestSessionService_ConcurrentTurnsSerialize(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()
	started, _ := svc.Start(ctx, service.StartSessionInput{DocumentType: "prescription"})
	id := started.Session.ID

	utterances := []string{
		"Patient Jean Dupont, 45 ans, hypertension",
		"Lisinopril 10mg une fois par jour",
		"pendant 3 mois, à jeun",
	}

	var wg sync.WaitGroup
	for _, u := range utterances {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			_, err := svc.SubmitTurn(ctx, id, service.SubmitTurnInput{Text: text})
			assert.NoError(t, err)
		}(u)
	}
	wg.Wait()

	view, err := svc.Get(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, 3, view.Session.TurnCount)
	assert.True(t, view.Validation.IsComplete)
}
