package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/notify"
)

// Backend is the persistent key-value table.
// Implemented by store.Store (SQLite) and store.RedisKV.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) (revision int64, err error)
}

// revisioner reports the per-key write counter without reading the value.
// Implemented by store.Store and store.RedisKV.
type revisioner interface {
	Revision(ctx context.Context, key string) (int64, error)
}

// errNoWrite aborts an Update without reporting an error to the caller.
var errNoWrite = errors.New("no write")

// Engine owns the store record.
//
// Thread-safety model:
//   - Read and the query helpers: safe from any goroutine, no lock
//   - Update, Write, MigrateStore, SeedIfEmpty, Sync: serialized on mu
//   - Subscribe: safe from any goroutine
type Engine struct {
	backend Backend
	broker  *notify.Broker
	logger  *slog.Logger
	clock   Clock
	ids     IDGenerator

	mu sync.Mutex
	// last is the most recent record this engine wrote or observed. Sync
	// diffs against it.
	last   model.Record
	primed bool
	// keyRev is the backend revision of the store key when last was taken,
	// -1 when unknown.
	keyRev int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock sets the wall clock used for timestamps. Default: SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithIDGenerator sets the id generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithBroker shares a broker between engines. Default: a private broker.
func WithBroker(b *notify.Broker) Option {
	return func(e *Engine) {
		e.broker = b
	}
}

// New creates an Engine over backend.
func New(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:   SystemClock{},
		ids:     UUIDv7Generator{},
		keyRev:  -1,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.broker == nil {
		e.broker = notify.NewBroker(e.logger)
	}
	return e
}

// Subscribe registers a listener for store changes.
func (e *Engine) Subscribe() *notify.Subscription {
	return e.broker.Subscribe()
}

// NewID returns a fresh id from the engine's generator.
func (e *Engine) NewID() model.ID {
	return e.ids.Generate()
}

// Read loads the persisted record, migrated in memory. It never fails: a
// backend error is logged and the defaults are returned.
func (e *Engine) Read(ctx context.Context) model.Record {
	rec, _, _, err := e.load(ctx)
	if err != nil {
		e.logger.Warn("store read failed, using defaults", "key", model.StoreKey, "error", err)
		return model.DefaultRecord()
	}
	return rec
}

// load returns the record, whether migration changed it and the raw stored
// value ("" when absent or unreadable). An absent or unparsable value yields
// the defaults; only a failed backend call is an error.
func (e *Engine) load(ctx context.Context) (model.Record, bool, string, error) {
	raw, ok, err := e.backend.Get(ctx, model.StoreKey)
	if err != nil {
		return model.Record{}, false, "", fmt.Errorf("read store: %w", err)
	}
	if !ok {
		return model.DefaultRecord(), false, "", nil
	}

	rec, changed, err := model.Decode([]byte(raw))
	if err != nil {
		e.logger.Warn("store record unreadable, using defaults", "key", model.StoreKey, "error", err)
		return model.DefaultRecord(), false, "", nil
	}
	return rec, changed, raw, nil
}

// Write persists rec as the whole store and publishes the change. The
// revision is assigned here; the value in rec is ignored. Nothing is written
// when the current record cannot be read.
func (e *Engine) Write(ctx context.Context, rec model.Record) (model.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, _, _, err := e.load(ctx)
	if err != nil {
		return model.Record{}, err
	}
	return e.writeLocked(ctx, prev, rec)
}

// Update runs mutate on a copy of the current record and writes the result.
// If mutate returns an error nothing is written or published, and the
// unchanged record is returned with the error. A backend read error aborts
// before mutate runs.
func (e *Engine) Update(ctx context.Context, mutate func(*model.Record) error) (model.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, _, _, err := e.load(ctx)
	if err != nil {
		return model.Record{}, err
	}
	next := prev.Clone()
	if err := mutate(&next); err != nil {
		return prev, err
	}
	return e.writeLocked(ctx, prev, next)
}

// writeLocked encodes and stores next, then publishes. Caller holds mu.
func (e *Engine) writeLocked(ctx context.Context, prev, next model.Record) (model.Record, error) {
	next = next.Clone()
	next.Normalize()
	next.SchemaVersion = model.CurrentSchemaVersion
	next.Revision = prev.Revision + 1

	data, err := json.Marshal(next)
	if err != nil {
		return prev, fmt.Errorf("write store: %w", err)
	}
	keyRev, err := e.backend.Put(ctx, model.StoreKey, string(data))
	if err != nil {
		return prev, fmt.Errorf("write store: %w", err)
	}

	changed := model.Changed(prev, next)
	e.last = next.Clone()
	e.primed = true
	e.keyRev = keyRev

	e.logger.Debug("store written",
		"revision", next.Revision,
		"collections", changed,
		"bytes", len(data))
	e.broker.Publish(notify.Change{
		Revision:    next.Revision,
		Collections: changed,
		Record:      next.Clone(),
	})
	return next, nil
}

// Sync re-reads the backend and publishes a change when the stored revision
// differs from the last one this engine wrote or observed, which happens
// when another process wrote the same database. The first call only
// records the current revision. Reports whether a change was published.
//
// Backends that expose a key revision are probed first, so an idle store is
// not decoded on every call. A failed read is logged and skipped.
func (e *Engine) Sync(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	keyRev := int64(-1)
	if r, ok := e.backend.(revisioner); ok {
		rev, err := r.Revision(ctx, model.StoreKey)
		if err != nil {
			e.logger.Warn("store revision probe failed, skipping sync", "error", err)
			return false
		}
		if e.primed && rev == e.keyRev {
			return false
		}
		keyRev = rev
	}

	cur, _, _, err := e.load(ctx)
	if err != nil {
		e.logger.Warn("store read failed, skipping sync", "error", err)
		return false
	}
	e.keyRev = keyRev
	if !e.primed {
		e.last = cur.Clone()
		e.primed = true
		return false
	}
	if cur.Revision == e.last.Revision {
		return false
	}

	changed := model.Changed(e.last, cur)
	e.logger.Info("external change detected",
		"from", e.last.Revision,
		"to", cur.Revision,
		"collections", changed)
	e.last = cur.Clone()
	e.broker.Publish(notify.Change{
		Revision:    cur.Revision,
		Collections: changed,
		Record:      cur.Clone(),
	})
	return true
}
