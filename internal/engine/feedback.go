package engine

import (
	"context"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// AddFeedback appends a feedback entry. Feedback is append-only: a second
// submission for the same event adds a second entry.
func (e *Engine) AddFeedback(ctx context.Context, fb model.Feedback) (model.Feedback, error) {
	if fb.Rating < 1 || fb.Rating > 5 {
		return model.Feedback{}, errdef.NewBadRequest("add feedback: rating %d out of range 1-5", fb.Rating)
	}
	if fb.ID == "" {
		fb.ID = e.ids.Generate()
	}
	if fb.SubmittedAt == "" {
		fb.SubmittedAt = e.isoNow()
	}

	_, err := e.Update(ctx, func(r *model.Record) error {
		r.Feedback = append(r.Feedback, fb)
		return nil
	})
	if err != nil {
		return model.Feedback{}, err
	}
	return fb, nil
}
