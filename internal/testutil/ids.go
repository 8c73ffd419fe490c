package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates predictable book ids: "<prefix>-1", "<prefix>-2", ...
//
// This enables golden snapshot comparison of anything that embeds ids.
// If prefix is empty, ids are bare numbers.
//
// Thread-safety: SequenceIDs is safe for concurrent use.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDs creates a generator whose first id ends in 1.
func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

// Generate returns the next id. Implements book.IDGenerator.
func (g *SequenceIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	if g.prefix == "" {
		return fmt.Sprintf("%d", g.n)
	}
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// FixedID returns the same id every time. Useful for exercising duplicate
// id handling.
type FixedID string

// Generate returns the fixed id. Implements book.IDGenerator.
func (id FixedID) Generate() string {
	return string(id)
}
