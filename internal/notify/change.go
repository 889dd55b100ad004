package notify

import "github.com/Punitjadhav07/Hack-build/internal/model"

// Change is published after every write of the store record.
type Change struct {
	// Revision is the record revision after the write.
	Revision int64

	// Collections lists what differs from the previous record. Empty when the
	// write stored identical content.
	Collections []model.Collection

	// Record is the full record as written.
	Record model.Record
}

// Touches reports whether the change modified the given collection.
func (c Change) Touches(col model.Collection) bool {
	for _, got := range c.Collections {
		if got == col {
			return true
		}
	}
	return false
}
