package model

import (
	"bytes"
	"encoding/json"
)

// Collection names a top-level part of the Record.
type Collection string

const (
	CollectionStats         Collection = "stats"
	CollectionEvents        Collection = "events"
	CollectionApprovals     Collection = "approvals"
	CollectionUsers         Collection = "users"
	CollectionFiles         Collection = "files"
	CollectionNotifications Collection = "notifications"
	CollectionRegistrations Collection = "registrations"
	CollectionReports       Collection = "reports"
	CollectionFeedback      Collection = "feedback"
)

// Collections lists every collection in record order.
var Collections = []Collection{
	CollectionStats,
	CollectionEvents,
	CollectionApprovals,
	CollectionUsers,
	CollectionFiles,
	CollectionNotifications,
	CollectionRegistrations,
	CollectionReports,
	CollectionFeedback,
}

// ParseCollection validates a collection name.
func ParseCollection(s string) (Collection, bool) {
	for _, c := range Collections {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// DefaultRecord returns the structurally complete empty record.
func DefaultRecord() Record {
	r := Record{SchemaVersion: CurrentSchemaVersion}
	r.Normalize()
	return r
}

// Normalize replaces nil lists with empty ones so the record always encodes
// every collection as an array.
func (r *Record) Normalize() {
	if r.Events == nil {
		r.Events = []Event{}
	}
	if r.Approvals == nil {
		r.Approvals = []Approval{}
	}
	if r.Users == nil {
		r.Users = []User{}
	}
	if r.Files.Badges == nil {
		r.Files.Badges = []FileEntry{}
	}
	if r.Files.Documents == nil {
		r.Files.Documents = []FileEntry{}
	}
	if r.Notifications == nil {
		r.Notifications = []Notification{}
	}
	if r.Registrations == nil {
		r.Registrations = []Registration{}
	}
	if r.Reports == nil {
		r.Reports = []Report{}
	}
	if r.Feedback == nil {
		r.Feedback = []Feedback{}
	}
}

// Clone returns a deep copy. Every element type is a plain value, so copying
// the slices is enough.
func (r Record) Clone() Record {
	out := r
	out.Events = append([]Event{}, r.Events...)
	out.Approvals = append([]Approval{}, r.Approvals...)
	out.Users = append([]User{}, r.Users...)
	out.Files.Badges = append([]FileEntry{}, r.Files.Badges...)
	out.Files.Documents = append([]FileEntry{}, r.Files.Documents...)
	out.Notifications = append([]Notification{}, r.Notifications...)
	out.Registrations = append([]Registration{}, r.Registrations...)
	out.Reports = append([]Report{}, r.Reports...)
	out.Feedback = append([]Feedback{}, r.Feedback...)
	return out
}

// Part returns the value of one collection.
func (r Record) Part(c Collection) any {
	switch c {
	case CollectionStats:
		return r.Stats
	case CollectionEvents:
		return r.Events
	case CollectionApprovals:
		return r.Approvals
	case CollectionUsers:
		return r.Users
	case CollectionFiles:
		return r.Files
	case CollectionNotifications:
		return r.Notifications
	case CollectionRegistrations:
		return r.Registrations
	case CollectionReports:
		return r.Reports
	case CollectionFeedback:
		return r.Feedback
	}
	return nil
}

// Changed lists the collections whose encoded content differs between two
// records. Revision and schema version are ignored.
func Changed(before, after Record) []Collection {
	before.Normalize()
	after.Normalize()
	var out []Collection
	for _, c := range Collections {
		a, errA := json.Marshal(before.Part(c))
		b, errB := json.Marshal(after.Part(c))
		if errA != nil || errB != nil || !bytes.Equal(a, b) {
			out = append(out, c)
		}
	}
	return out
}

// FindEvent returns the index of the event with the given id, or -1.
func (r Record) FindEvent(id ID) int {
	for i := range r.Events {
		if r.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// FindUser returns the index of the user with the given id, or -1.
func (r Record) FindUser(id ID) int {
	for i := range r.Users {
		if r.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// IsRegistered reports whether the pair already has a registration.
func (r Record) IsRegistered(userID, eventID ID) bool {
	for _, reg := range r.Registrations {
		if reg.UserID == userID && reg.EventID == eventID {
			return true
		}
	}
	return false
}

// ComputedStats derives the dashboard counters from the lists.
func (r Record) ComputedStats() Stats {
	return Stats{
		TotalEvents:      len(r.Events),
		TotalUsers:       len(r.Users),
		Registrations:    len(r.Registrations),
		PendingApprovals: len(r.Approvals),
	}
}
