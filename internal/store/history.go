package store

import (
	"context"
	"fmt"
	"time"
)

// HistoryEntry is one recorded write.
type HistoryEntry struct {
	Revision  int64     `json:"revision"`
	Value     string    `json:"value"`
	WrittenAt time.Time `json:"writtenAt"`
}

// History returns the most recent writes to key, newest first. limit <= 0
// returns all of them.
func (s *Store) History(ctx context.Context, key string, limit int) ([]HistoryEntry, error) {
	query := `SELECT revision, value, written_at FROM kv_history
		WHERE key = ? ORDER BY revision DESC`
	args := []any{key}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history %q: %w", key, err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e  HistoryEntry
			ts string
		)
		if err := rows.Scan(&e.Revision, &e.Value, &ts); err != nil {
			return nil, fmt.Errorf("history %q: scan: %w", key, err)
		}
		e.WrittenAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("history %q: revision %d: %w", key, e.Revision, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history %q: %w", key, err)
	}
	return entries, nil
}

// PruneHistory deletes all but the newest keep entries for key and returns how
// many rows were removed.
func (s *Store) PruneHistory(ctx context.Context, key string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM kv_history
		WHERE key = ? AND revision NOT IN (
			SELECT revision FROM kv_history WHERE key = ?
			ORDER BY revision DESC LIMIT ?
		)
	`, key, key, keep)
	if err != nil {
		return 0, fmt.Errorf("prune history %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune history %q: %w", key, err)
	}
	return n, nil
}
