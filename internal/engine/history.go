package engine

import (
	"context"
	"time"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
	"github.com/Punitjadhav07/Hack-build/internal/store"
)

// historian is implemented by backends that keep past values.
type historian interface {
	History(ctx context.Context, key string, limit int) ([]store.HistoryEntry, error)
}

// Snapshot is one past version of the store record.
type Snapshot struct {
	// StoreRevision counts writes to the key in the backend.
	StoreRevision int64
	WrittenAt     time.Time
	Record        model.Record
}

// History returns up to limit past records, newest first. Entries that no
// longer decode are skipped.
func (e *Engine) History(ctx context.Context, limit int) ([]Snapshot, error) {
	h, ok := e.backend.(historian)
	if !ok {
		return nil, errdef.NewBadRequest("history: backend keeps no history")
	}

	entries, err := h.History(ctx, model.StoreKey, limit)
	if err != nil {
		return nil, err
	}

	out := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		rec, _, err := model.Decode([]byte(entry.Value))
		if err != nil {
			e.logger.Warn("history entry unreadable", "revision", entry.Revision, "error", err)
			continue
		}
		out = append(out, Snapshot{
			StoreRevision: entry.Revision,
			WrittenAt:     entry.WrittenAt,
			Record:        rec,
		})
	}
	return out, nil
}
