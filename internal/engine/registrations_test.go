package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

func TestRegisterForEvent_Once(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	ev := mustAddEvent(t, e, model.Event{Title: "A", Capacity: 10, Registered: 2})

	created, err := e.RegisterForEvent(ctx, "u1", ev.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = e.RegisterForEvent(ctx, "u1", ev.ID)
	require.NoError(t, err)
	assert.False(t, created)

	rec := e.Read(ctx)
	assert.Len(t, rec.Registrations, 1)
	assert.Equal(t, 3, rec.Events[0].Registered, "incremented once")
	assert.Equal(t, 1, rec.Stats.Registrations)
}

func TestRegisterForEvent_UnknownEvent(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	created, err := e.RegisterForEvent(ctx, "u1", "missing")
	require.NoError(t, err)
	assert.True(t, created, "registration is recorded even without the event")
	assert.Len(t, e.Read(ctx).Registrations, 1)
}
