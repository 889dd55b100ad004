package engine

import (
	"context"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// QueueApproval appends a pending event submission and sets
// stats.pendingApprovals.
func (e *Engine) QueueApproval(ctx context.Context, ap model.Approval) (model.Approval, error) {
	if ap.ID == "" {
		ap.ID = e.ids.Generate()
	}
	if ap.SubmittedAt == "" {
		ap.SubmittedAt = e.isoNow()
	}
	if ap.Capacity < 0 {
		return model.Approval{}, errdef.NewBadRequest("queue approval: capacity must not be negative")
	}

	_, err := e.Update(ctx, func(r *model.Record) error {
		for _, existing := range r.Approvals {
			if existing.ID == ap.ID {
				return errdef.NewConflict("queue approval: id %s already pending", ap.ID)
			}
		}
		r.Approvals = append(r.Approvals, ap)
		r.Stats.PendingApprovals = len(r.Approvals)
		return nil
	})
	if err != nil {
		return model.Approval{}, err
	}
	return ap, nil
}

// ResolveApproval removes the submission. When approved it becomes a
// published event with the same id; an event already using that id is a
// conflict and aborts the whole resolution.
func (e *Engine) ResolveApproval(ctx context.Context, id model.ID, approved bool) (model.Record, error) {
	return e.Update(ctx, func(r *model.Record) error {
		var (
			found bool
			ap    model.Approval
		)
		kept := r.Approvals[:0]
		for _, a := range r.Approvals {
			if a.ID == id && !found {
				found, ap = true, a
				continue
			}
			kept = append(kept, a)
		}
		r.Approvals = kept
		r.Stats.PendingApprovals = len(r.Approvals)

		if approved && found {
			if r.FindEvent(ap.ID) >= 0 {
				return errdef.NewConflict("resolve approval: event %s already exists", ap.ID)
			}
			r.Events = append(r.Events, ap.ToEvent())
			r.Stats.TotalEvents = len(r.Events)
		}
		return nil
	})
}
