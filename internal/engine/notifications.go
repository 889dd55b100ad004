package engine

import (
	"context"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// AddNotification prepends n, newest first. Time defaults to "just now".
func (e *Engine) AddNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	if n.ID == "" {
		n.ID = e.ids.Generate()
	}
	if n.Time == "" {
		n.Time = justNow
	}
	if n.Timestamp == "" {
		n.Timestamp = e.isoNow()
	}

	_, err := e.Update(ctx, func(r *model.Record) error {
		r.Notifications = append([]model.Notification{n}, r.Notifications...)
		return nil
	})
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

// MarkNotificationRead clears the unread flag of one notification.
func (e *Engine) MarkNotificationRead(ctx context.Context, id model.ID) (model.Record, error) {
	return e.Update(ctx, func(r *model.Record) error {
		for i := range r.Notifications {
			if r.Notifications[i].ID == id {
				r.Notifications[i].Unread = false
			}
		}
		return nil
	})
}

// MarkAllNotificationsRead clears every unread flag.
func (e *Engine) MarkAllNotificationsRead(ctx context.Context) (model.Record, error) {
	return e.Update(ctx, func(r *model.Record) error {
		for i := range r.Notifications {
			r.Notifications[i].Unread = false
		}
		return nil
	})
}

// DeleteNotification removes one notification.
func (e *Engine) DeleteNotification(ctx context.Context, id model.ID) (model.Record, error) {
	return e.Update(ctx, func(r *model.Record) error {
		kept := r.Notifications[:0]
		for _, n := range r.Notifications {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		r.Notifications = kept
		return nil
	})
}
