package fixture

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

func counter(start int) func() model.ID {
	n := start
	return func() model.ID {
		n++
		return model.ID(strconv.Itoa(n))
	}
}

func TestLoadSeed(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	seed, err := LoadSeed(now, counter(100))
	require.NoError(t, err)

	require.Len(t, seed.Events, 3)
	require.Len(t, seed.Feedback, 4)
	require.Len(t, seed.Notifications, 4)

	for _, ev := range seed.Events {
		assert.Equal(t, model.StatusPublished, ev.Status, ev.Title)
	}

	summit := seed.Events[0]
	assert.Equal(t, model.ID("101"), summit.ID)
	assert.Equal(t, "Tech Innovation Summit 2025", summit.Title)
	assert.Equal(t, "Computer Science Department", summit.Department)
	assert.Equal(t, "Mar 15, 2025", summit.Date)
	assert.Equal(t, "09:00 AM", summit.Time)
	assert.Equal(t, 500, summit.Capacity)
	assert.Equal(t, "conference", summit.Type)

	assert.Equal(t, "Web Development Workshop", seed.Events[1].Title)
	assert.Equal(t, 25, seed.Events[1].Registered)
	assert.Equal(t, "UI/UX Design Workshop", seed.Events[2].Title)
	assert.Equal(t, 15, seed.Events[2].Registered)

	// Feedback points at the generated event ids.
	assert.Equal(t, seed.Events[1].ID, seed.Feedback[0].EventID)
	assert.Equal(t, "John Smith", seed.Feedback[0].UserName)
	assert.Equal(t, seed.Events[0].ID, seed.Feedback[3].EventID)
	assert.Equal(t, "Maria Rodriguez", seed.Feedback[3].UserName)
	assert.Equal(t, model.ID("104"), seed.Feedback[0].ID)

	welcome := seed.Notifications[0]
	assert.Equal(t, "Welcome to Eventra!", welcome.Title)
	assert.True(t, welcome.Unread)
	assert.Equal(t, "2025-03-01T12:00:00.000Z", welcome.Timestamp)

	assert.Equal(t, "2025-03-01T11:00:00.000Z", seed.Notifications[1].Timestamp)
	assert.False(t, seed.Notifications[2].Unread)
	assert.Equal(t, "2025-02-28T12:00:00.000Z", seed.Notifications[3].Timestamp)
	assert.Equal(t, "Updates", seed.Notifications[3].Category)
}

func TestImportEvents_AppliesDefaults(t *testing.T) {
	src := `
events: [{
	title: "Robotics Meetup"
	date:  "2025-05-02"
}, {
	id:       42
	title:    "Hack Night"
	status:   "published"
	capacity: 80
}]
`
	events, err := ImportEvents([]byte(src), "events.cue")
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Empty(t, first.ID)
	assert.Equal(t, model.StatusDraft, first.Status)
	assert.Equal(t, "general", first.Type)
	assert.Equal(t, "TBD", first.Location)
	assert.Equal(t, "No description provided", first.Description)
	assert.Equal(t, "2025-05-02", first.Date)

	second := events[1]
	assert.Equal(t, model.ID("42"), second.ID)
	assert.Equal(t, model.StatusPublished, second.Status)
	assert.Equal(t, 80, second.Capacity)
}

func TestImportEvents_AcceptsJSON(t *testing.T) {
	src := `{"events":[{"title":"Open Day","type":"tour"}]}`

	events, err := ImportEvents([]byte(src), "events.json")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "tour", events[0].Type)
}

func TestImportEvents_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown status", `events: [{title: "A", status: "live"}]`},
		{"negative capacity", `events: [{title: "A", capacity: -1}]`},
		{"empty title", `events: [{title: ""}]`},
		{"missing title", `events: [{date: "2025-01-01"}]`},
		{"unknown field", `events: [{title: "A", price: 10}]`},
		{"syntax", `events: [{title: `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportEvents([]byte(tt.src), "bad.cue")
			require.Error(t, err)
			var fe *Error
			assert.True(t, errors.As(err, &fe), "got %T: %v", err, err)
		})
	}
}

func TestImportEvents_Empty(t *testing.T) {
	events, err := ImportEvents([]byte(`events: []`), "empty.cue")
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NotNil(t, events)
}
