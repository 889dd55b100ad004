package testutil

import (
	"strconv"
	"sync"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

// SequenceIDs generates numeric ids start+1, start+2, ...
//
// Numeric ids match what the browser build stored (millisecond timestamps),
// so records produced under test look like real ones and encode ids as JSON
// numbers.
//
// Thread-safety: SequenceIDs is safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu   sync.Mutex
	next int64
}

// NewSequenceIDs creates a generator whose first id is start+1.
func NewSequenceIDs(start int64) *SequenceIDs {
	return &SequenceIDs{next: start}
}

// Generate returns the next id.
//
// Implements engine.IDGenerator interface.
func (g *SequenceIDs) Generate() model.ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return model.ID(strconv.FormatInt(g.next, 10))
}

// Reset makes the next id start+1 again.
func (g *SequenceIDs) Reset(start int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = start
}
