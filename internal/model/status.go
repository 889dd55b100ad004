package model

import "fmt"

// EventStatus is the lifecycle state of an Event.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusAttended  EventStatus = "attended"

	// StatusRegistered is a client view value shown to a user who signed up.
	// It is never persisted.
	StatusRegistered EventStatus = "registered"
)

// transitions lists the allowed moves out of each persisted status.
// attended -> published reopens a finished event.
var transitions = map[EventStatus][]EventStatus{
	StatusDraft:     {StatusPublished},
	StatusPublished: {StatusAttended},
	StatusAttended:  {StatusPublished},
}

// Valid reports whether s may be persisted.
func (s EventStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an event may move from one status to another.
// Staying in the same valid status is always allowed.
func CanTransition(from, to EventStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseEventStatus validates a persisted status name.
func ParseEventStatus(s string) (EventStatus, error) {
	status := EventStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown event status %q", s)
	}
	return status, nil
}

// Role is a user's permission level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserStatus marks whether a user may take part.
type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
)
