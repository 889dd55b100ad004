package views

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

const (
	adminUpcomingLimit = 2
	userUpcomingLimit  = 3
	recentNotes        = 3
)

// AdminOverview is the admin dashboard summary.
type AdminOverview struct {
	Stats         model.Stats          `json:"stats"`
	Upcoming      []UpcomingItem       `json:"upcoming"`
	Notifications []model.Notification `json:"notifications"`
}

// Overview summarizes rec for the admin dashboard: the stored stats, the next
// two events and the three newest notifications.
func Overview(rec model.Record, now time.Time) AdminOverview {
	notes := rec.Notifications
	if len(notes) > recentNotes {
		notes = notes[:recentNotes]
	}
	return AdminOverview{
		Stats:         rec.Stats,
		Upcoming:      Upcoming(rec.Events, now, UpcomingOptions{Limit: adminUpcomingLimit}),
		Notifications: append([]model.Notification{}, notes...),
	}
}

// UserOverview is the user dashboard summary.
type UserOverview struct {
	RegisteredEvents int            `json:"registeredEvents"`
	ActiveTickets    int            `json:"activeTickets"`
	Unread           int            `json:"unreadNotifications"`
	Upcoming         []UpcomingItem `json:"upcoming"`
}

// ForUser summarizes rec for one user: their registrations, unread
// notifications and next three registered events.
func ForUser(rec model.Record, userID model.ID, now time.Time) UserOverview {
	mine := UserEvents(rec, userID)
	return UserOverview{
		RegisteredEvents: len(mine),
		ActiveTickets:    len(mine),
		Unread:           UnreadCount(rec.Notifications),
		Upcoming:         Upcoming(mine, now, UpcomingOptions{Limit: userUpcomingLimit}),
	}
}

// UserEvents returns the events userID registered for, in event order.
func UserEvents(rec model.Record, userID model.ID) []model.Event {
	out := []model.Event{}
	for _, ev := range rec.Events {
		if rec.IsRegistered(userID, ev.ID) {
			out = append(out, ev)
		}
	}
	return out
}

// UnreadCount counts unread notifications.
func UnreadCount(notes []model.Notification) int {
	n := 0
	for _, note := range notes {
		if note.Unread {
			n++
		}
	}
	return n
}

// Card is an event as shown on an event card.
type Card struct {
	ID             model.ID `json:"id"`
	Status         string   `json:"status"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Location       string   `json:"location"`
	AvailableSpots int      `json:"availableSpots"`
}

// Cards renders events as cards carrying the given display status, for
// example "registered" for a user's own events.
func Cards(events []model.Event, status string) []Card {
	out := make([]Card, 0, len(events))
	for _, ev := range events {
		out = append(out, Card{
			ID:             ev.ID,
			Status:         status,
			Type:           ev.Type,
			Title:          ev.Title,
			Description:    ev.Description,
			Date:           ev.Date,
			Time:           ev.Time,
			Location:       ev.Location,
			AvailableSpots: ev.AvailableSpots(),
		})
	}
	return out
}

// NotificationAge describes how long ago n was sent, using its ISO timestamp
// when present and its stored display time otherwise.
func NotificationAge(n model.Notification, now time.Time) string {
	if n.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339Nano, n.Timestamp); err == nil {
			if now.Sub(ts) < time.Minute {
				return "just now"
			}
			return humanize.RelTime(ts, now, "ago", "from now")
		}
	}
	return n.Time
}
