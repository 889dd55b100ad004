package engine

import (
	"context"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// EventPatch lists the fields UpdateEvent may change. Nil fields are kept.
// Registered is not patchable; only RegisterForEvent increments it.
type EventPatch struct {
	Title       *string
	Description *string
	Department  *string
	Date        *string
	Time        *string
	Location    *string
	Type        *string
	Status      *model.EventStatus
	Capacity    *int
}

// AddEvent appends ev. A missing id is generated and a missing status
// becomes draft. Sets stats.totalEvents to the number of events.
func (e *Engine) AddEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.ID == "" {
		ev.ID = e.ids.Generate()
	}
	if ev.Status == "" {
		ev.Status = model.StatusDraft
	}
	if !ev.Status.Valid() {
		return model.Event{}, errdef.NewBadRequest("add event: unknown status %q", ev.Status)
	}
	if ev.Capacity < 0 || ev.Registered < 0 {
		return model.Event{}, errdef.NewBadRequest("add event: capacity and registered must not be negative")
	}

	_, err := e.Update(ctx, func(r *model.Record) error {
		if r.FindEvent(ev.ID) >= 0 {
			return errdef.NewConflict("add event: id %s already exists", ev.ID)
		}
		r.Events = append(r.Events, ev)
		r.Stats.TotalEvents = len(r.Events)
		return nil
	})
	if err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// UpdateEvent applies patch to the event with the given id. A status change
// must follow the status table.
func (e *Engine) UpdateEvent(ctx context.Context, id model.ID, patch EventPatch) (model.Record, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Record{}, errdef.NewBadRequest("update event: unknown status %q", *patch.Status)
	}
	if patch.Capacity != nil && *patch.Capacity < 0 {
		return model.Record{}, errdef.NewBadRequest("update event: capacity must not be negative")
	}

	return e.Update(ctx, func(r *model.Record) error {
		i := r.FindEvent(id)
		if i < 0 {
			return nil
		}
		ev := &r.Events[i]
		if patch.Status != nil && !model.CanTransition(ev.Status, *patch.Status) {
			return errdef.NewConflict("update event: cannot move %s from %s to %s", id, ev.Status, *patch.Status)
		}
		applyPatch(ev, patch)
		return nil
	})
}

func applyPatch(ev *model.Event, p EventPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&ev.Title, p.Title)
	set(&ev.Description, p.Description)
	set(&ev.Department, p.Department)
	set(&ev.Date, p.Date)
	set(&ev.Time, p.Time)
	set(&ev.Location, p.Location)
	set(&ev.Type, p.Type)
	if p.Status != nil {
		ev.Status = *p.Status
	}
	if p.Capacity != nil {
		ev.Capacity = *p.Capacity
	}
}

// DeleteEvent removes the event and resets stats.totalEvents.
// Registrations and feedback that point at it are kept.
func (e *Engine) DeleteEvent(ctx context.Context, id model.ID) (model.Record, error) {
	return e.Update(ctx, func(r *model.Record) error {
		kept := r.Events[:0]
		for _, ev := range r.Events {
			if ev.ID != id {
				kept = append(kept, ev)
			}
		}
		r.Events = kept
		r.Stats.TotalEvents = len(r.Events)
		return nil
	})
}

// SetEventStatus moves an event through the status table:
// draft -> published -> attended, and attended -> published to reopen.
func (e *Engine) SetEventStatus(ctx context.Context, id model.ID, status model.EventStatus) (model.Record, error) {
	return e.UpdateEvent(ctx, id, EventPatch{Status: &status})
}
