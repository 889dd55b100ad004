package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/store"
	"github.com/Punitjadhav07/Hack-build/internal/testutil"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestEngine returns an engine with a fixed clock (testutil.DefaultTime)
// and numeric ids starting at 1.
func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	s := setupTestStore(t)
	e := New(s,
		WithClock(testutil.NewFixedClock(testutil.DefaultTime)),
		WithIDGenerator(testutil.NewSequenceIDs(0)),
	)
	return e, s
}

// failingBackend returns the configured errors.
type failingBackend struct {
	value  string
	getErr error
	putErr error
}

func (b *failingBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if b.getErr != nil {
		return "", false, b.getErr
	}
	return b.value, b.value != "", nil
}

func (b *failingBackend) Put(ctx context.Context, key, value string) (int64, error) {
	if b.putErr != nil {
		return 0, b.putErr
	}
	b.value = value
	return 1, nil
}

// countingBackend counts value reads on a real store.
type countingBackend struct {
	*store.Store
	gets int
}

func (b *countingBackend) Get(ctx context.Context, key string) (string, bool, error) {
	b.gets++
	return b.Store.Get(ctx, key)
}

var errBackend = errors.New("disk on fire")

func mustAddEvent(t *testing.T, e *Engine, ev model.Event) model.Event {
	t.Helper()
	got, err := e.AddEvent(context.Background(), ev)
	require.NoError(t, err)
	return got
}

func mustAddUser(t *testing.T, e *Engine, u model.User) model.User {
	t.Helper()
	got, err := e.AddUser(context.Background(), u)
	require.NoError(t, err)
	return got
}
