// Package dialogue drives the collection conversation: each turn folds the
// utterance into the session record, re-derives the session state from
// scratch, and decides the single next thing to ask for.
package dialogue

import (
	"context"
	"time"

	"vocalis/internal/domain"
	"vocalis/internal/extractor"
	"vocalis/internal/record"
	"vocalis/internal/validator"
)

// TurnResult is everything one turn produced.
type TurnResult struct {
	// Captured lists the field keys this turn filled, in schema order.
	Captured   []string         `json:"captured"`
	Validation validator.Result `json:"validation"`
	// Prompt is the assistant's reply: an acknowledgement plus a request
	// for exactly one missing field, or a completion notice.
	Prompt string `json:"prompt"`
}

// Controller is stateless; all conversation state lives in the session.
type Controller struct {
	extractor *extractor.Extractor
}

func NewController(ex *extractor.Extractor) *Controller {
	return &Controller{extractor: ex}
}

// HandleTurn processes one utterance against the session. State is always
// recomputed from the merged record, never carried forward, so a field edit
// that blanks a critical value correctly drops the session back to
// collecting.
func (c *Controller) HandleTurn(ctx context.Context, sess *domain.Session, sch *domain.DocumentSchema, text string) TurnResult {
	found := c.extractor.Extract(ctx, text, sch)

	var captured []string
	for _, f := range sch.Fields {
		value, ok := found[f.Key]
		if !ok || value == "" {
			continue
		}
		// Corrections count too: a turn that replaces a value captured it.
		if old, _ := sess.Record.Value(f.Key); value != old {
			captured = append(captured, f.Key)
		}
	}

	sess.Record = record.Merge(sess.Record, found)
	res := validator.Validate(sess.Record, sch)

	sess.State = domain.SessionStateCollecting
	if res.IsComplete {
		sess.State = domain.SessionStateComplete
	}
	sess.TurnCount++
	sess.UpdatedAt = time.Now().UTC()

	return TurnResult{
		Captured:   captured,
		Validation: res,
		Prompt:     buildPrompt(sch, captured, res),
	}
}

// Revalidate refreshes the session state after an out-of-band record change,
// without consuming a turn.
func (c *Controller) Revalidate(sess *domain.Session, sch *domain.DocumentSchema) validator.Result {
	res := validator.Validate(sess.Record, sch)
	sess.State = domain.SessionStateCollecting
	if res.IsComplete {
		sess.State = domain.SessionStateComplete
	}
	sess.UpdatedAt = time.Now().UTC()
	return res
}
