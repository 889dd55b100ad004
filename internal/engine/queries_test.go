package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

func TestQueries(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	a := mustAddEvent(t, e, model.Event{Title: "A"})
	b := mustAddEvent(t, e, model.Event{Title: "B"})
	ana := mustAddUser(t, e, model.User{Name: "Ana"})
	bo := mustAddUser(t, e, model.User{Name: "Bo"})

	for _, reg := range []struct{ user, event model.ID }{
		{bo.ID, b.ID},
		{ana.ID, b.ID},
		{ana.ID, a.ID},
		{"ghost", b.ID},
	} {
		_, err := e.RegisterForEvent(ctx, reg.user, reg.event)
		require.NoError(t, err)
	}
	_, err := e.AddFeedback(ctx, model.Feedback{EventID: b.ID, UserID: ana.ID, Rating: 5})
	require.NoError(t, err)

	got, ok := e.GetEventByID(ctx, b.ID)
	require.True(t, ok)
	assert.Equal(t, "B", got.Title)
	assert.Equal(t, 3, got.Registered)

	_, ok = e.GetEventByID(ctx, "nope")
	assert.False(t, ok)

	user, ok := e.GetUserByID(ctx, bo.ID)
	require.True(t, ok)
	assert.Equal(t, "Bo", user.Name)

	registrants := e.GetRegistrantsForEvent(ctx, b.ID)
	require.Len(t, registrants, 2, "unknown users are skipped")
	assert.Equal(t, bo.ID, registrants[0].ID)
	assert.Equal(t, ana.ID, registrants[1].ID)

	events := e.GetUserEvents(ctx, ana.ID)
	require.Len(t, events, 2)
	assert.Equal(t, a.ID, events[0].ID, "event order, not registration order")

	assert.Len(t, e.GetFeedbackForEvent(ctx, b.ID), 1)
	assert.Len(t, e.GetUserFeedback(ctx, ana.ID), 1)
}

func TestQueries_EmptyResultsAreNotNil(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	assert.NotNil(t, e.GetRegistrantsForEvent(ctx, "x"))
	assert.NotNil(t, e.GetUserEvents(ctx, "x"))
	assert.NotNil(t, e.GetFeedbackForEvent(ctx, "x"))
	assert.NotNil(t, e.GetUserFeedback(ctx, "x"))
}
