package engine

import (
	"context"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// GetEventByID returns the event with the given id.
func (e *Engine) GetEventByID(ctx context.Context, id model.ID) (model.Event, bool) {
	rec := e.Read(ctx)
	if i := rec.FindEvent(id); i >= 0 {
		return rec.Events[i], true
	}
	return model.Event{}, false
}

// GetUserByID returns the user with the given id.
func (e *Engine) GetUserByID(ctx context.Context, id model.ID) (model.User, bool) {
	rec := e.Read(ctx)
	if i := rec.FindUser(id); i >= 0 {
		return rec.Users[i], true
	}
	return model.User{}, false
}

// GetRegistrantsForEvent returns the users registered for eventID in
// registration order. Registrations of unknown users are skipped.
func (e *Engine) GetRegistrantsForEvent(ctx context.Context, eventID model.ID) []model.User {
	rec := e.Read(ctx)
	out := []model.User{}
	for _, reg := range rec.Registrations {
		if reg.EventID != eventID {
			continue
		}
		if i := rec.FindUser(reg.UserID); i >= 0 {
			out = append(out, rec.Users[i])
		}
	}
	return out
}

// GetUserEvents returns the events userID registered for, in event order.
func (e *Engine) GetUserEvents(ctx context.Context, userID model.ID) []model.Event {
	rec := e.Read(ctx)
	ids := make(map[model.ID]bool)
	for _, reg := range rec.Registrations {
		if reg.UserID == userID {
			ids[reg.EventID] = true
		}
	}
	out := []model.Event{}
	for _, ev := range rec.Events {
		if ids[ev.ID] {
			out = append(out, ev)
		}
	}
	return out
}

// GetFeedbackForEvent returns the feedback entries for eventID.
func (e *Engine) GetFeedbackForEvent(ctx context.Context, eventID model.ID) []model.Feedback {
	return filterFeedback(e.Read(ctx).Feedback, func(f model.Feedback) bool { return f.EventID == eventID })
}

// GetUserFeedback returns the feedback entries written by userID.
func (e *Engine) GetUserFeedback(ctx context.Context, userID model.ID) []model.Feedback {
	return filterFeedback(e.Read(ctx).Feedback, func(f model.Feedback) bool { return f.UserID == userID })
}

func filterFeedback(all []model.Feedback, keep func(model.Feedback) bool) []model.Feedback {
	out := []model.Feedback{}
	for _, f := range all {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
