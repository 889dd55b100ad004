package engine

import (
	"context"
	"strings"

	"github.com/Punitjadhav07/Hack-build/internal/errdef"
	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// AddBadge records a badge placeholder. Nothing is uploaded.
func (e *Engine) AddBadge(ctx context.Context, f model.FileEntry) (model.Record, error) {
	if strings.TrimSpace(f.Name) == "" {
		return model.Record{}, errdef.NewBadRequest("add badge: name is required")
	}
	return e.Update(ctx, func(r *model.Record) error {
		r.Files.Badges = append(r.Files.Badges, f)
		return nil
	})
}

// AddDocument records a document placeholder.
func (e *Engine) AddDocument(ctx context.Context, f model.FileEntry) (model.Record, error) {
	if strings.TrimSpace(f.Name) == "" {
		return model.Record{}, errdef.NewBadRequest("add document: name is required")
	}
	return e.Update(ctx, func(r *model.Record) error {
		r.Files.Documents = append(r.Files.Documents, f)
		return nil
	})
}
