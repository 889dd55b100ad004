package engine

import (
	"context"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// RecomputeStats rebuilds every stat from the lists. Individual commands only
// patch the stat they touch, so counters drift after deletes and manual edits.
func (e *Engine) RecomputeStats(ctx context.Context) (model.Stats, error) {
	rec, err := e.Update(ctx, func(r *model.Record) error {
		r.Stats = r.ComputedStats()
		return nil
	})
	if err != nil {
		return model.Stats{}, err
	}
	return rec.Stats, nil
}
