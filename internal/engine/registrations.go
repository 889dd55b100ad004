package engine

import (
	"context"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// RegisterForEvent records that userID attends eventID. A repeated pair is
// ignored. A new registration increments the event's registered counter (if
// the event exists) and sets stats.registrations. Reports whether a new
// registration was created.
func (e *Engine) RegisterForEvent(ctx context.Context, userID, eventID model.ID) (bool, error) {
	created := false
	_, err := e.Update(ctx, func(r *model.Record) error {
		created = false
		if r.IsRegistered(userID, eventID) {
			return nil
		}
		r.Registrations = append(r.Registrations, model.Registration{UserID: userID, EventID: eventID})
		if i := r.FindEvent(eventID); i >= 0 {
			r.Events[i].Registered++
		}
		r.Stats.Registrations = len(r.Registrations)
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
