package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecordEncodesEmptyLists(t *testing.T) {
	data, err := json.Marshal(DefaultRecord())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, c := range Collections {
		if c == CollectionStats || c == CollectionFiles {
			continue
		}
		assert.Equal(t, []any{}, raw[string(c)], "collection %s", c)
	}
	files := raw["files"].(map[string]any)
	assert.Equal(t, []any{}, files["badges"])
	assert.Equal(t, []any{}, files["documents"])
	assert.Equal(t, float64(CurrentSchemaVersion), raw["schemaVersion"])
}

func TestCloneIsIndependent(t *testing.T) {
	rec := DefaultRecord()
	rec.Events = append(rec.Events, Event{ID: "1", Title: "A"})

	cp := rec.Clone()
	cp.Events[0].Title = "B"
	cp.Users = append(cp.Users, User{ID: "u"})

	assert.Equal(t, "A", rec.Events[0].Title)
	assert.Empty(t, rec.Users)
}

func TestChanged(t *testing.T) {
	before := DefaultRecord()
	after := before.Clone()
	after.Events = append(after.Events, Event{ID: "1"})
	after.Stats.TotalEvents = 1
	after.Revision = 9

	assert.Equal(t, []Collection{CollectionStats, CollectionEvents}, Changed(before, after))
	assert.Empty(t, Changed(before, before.Clone()))
}

func TestChangedTreatsNilAsEmpty(t *testing.T) {
	assert.Empty(t, Changed(Record{}, DefaultRecord()))
}

func TestAvailableSpots(t *testing.T) {
	assert.Equal(t, 5, Event{Capacity: 30, Registered: 25}.AvailableSpots())
	assert.Equal(t, 0, Event{Capacity: 10, Registered: 12}.AvailableSpots())
}

func TestApprovalToEvent(t *testing.T) {
	ev := Approval{ID: "9", Title: "Hack Night", Organizer: "ACM", Capacity: 40}.ToEvent()
	assert.Equal(t, ID("9"), ev.ID)
	assert.Equal(t, "ACM", ev.Department)
	assert.Equal(t, StatusPublished, ev.Status)
	assert.Zero(t, ev.Registered)
}

func TestParseCollection(t *testing.T) {
	c, ok := ParseCollection("feedback")
	assert.True(t, ok)
	assert.Equal(t, CollectionFeedback, c)

	_, ok = ParseCollection("tickets")
	assert.False(t, ok)
}
