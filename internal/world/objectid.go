package world

import (
	"sync/atomic"

	"github.com/udisondev/scenequery/internal/model"
)

// HandleGenerator issues actor handles.
// Handles are never reused, so a stale handle can never alias a newer actor.
//
// Ranges (convention):
//
//	0x00000000:              invalid
//	0x00000001 - 0x0FFFFFFF: reserved for tests and static geometry
//	0x10000000 - 0x1FFFFFFF: actors spawned at runtime
type HandleGenerator struct {
	next atomic.Uint32
}

// NewHandleGenerator creates a generator starting at the runtime range.
func NewHandleGenerator() *HandleGenerator {
	gen := &HandleGenerator{}
	gen.next.Store(0x10000000)
	return gen
}

// Next returns a fresh handle. Thread-safe via atomic increment.
func (g *HandleGenerator) Next() model.Handle {
	return model.Handle(g.next.Add(1))
}
