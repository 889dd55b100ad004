package engine

import (
	"github.com/google/uuid"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// IDGenerator creates record ids.
// Implemented by UUIDv7Generator (production) and testutil.SequenceIDs
// (tests).
type IDGenerator interface {
	Generate() model.ID
}

// UUIDv7Generator generates time-sortable UUIDv7 ids, so records created
// later sort after earlier ones, like the millisecond ids of the browser build.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 in hyphenated form.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() model.ID {
	return model.ID(uuid.Must(uuid.NewV7()).String())
}
