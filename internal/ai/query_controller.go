package ai

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/scenequery/internal/scenequery"
)

// QueryController updates a scene query once per tick.
type QueryController struct {
	query   *scenequery.Query
	running atomic.Bool

	lastOutcome   atomic.Int32
	regenerations atomic.Uint64
}

// NewQueryController wraps a query that already passed Setup.
func NewQueryController(q *scenequery.Query) *QueryController {
	return &QueryController{query: q}
}

// Start starts the controller
func (c *QueryController) Start() {
	c.running.Store(true)
}

// Stop stops the controller
func (c *QueryController) Stop() {
	c.running.Store(false)
}

// CurrentIntention is active while the query is bound to a live actor.
func (c *QueryController) CurrentIntention() Intention {
	if c.running.Load() && c.query.Enabled() {
		return IntentionActive
	}
	return IntentionIdle
}

// Tick advances the query by dt.
func (c *QueryController) Tick(dt time.Duration) {
	if !c.running.Load() {
		return
	}

	out := c.query.Update(dt)
	c.lastOutcome.Store(int32(out))

	if out != scenequery.OutcomeRegenerated {
		return
	}
	c.regenerations.Add(1)

	if IsDebugEnabled() {
		slog.Debug("scene query regenerated",
			"context", c.query.ContextHandle(),
			"generation", c.query.Generation(),
			"nodes", len(c.query.Nodes()),
			"free", c.query.FreeCount(),
			"took", c.query.Stats().Total)
	}
}

// Query returns the wrapped query.
func (c *QueryController) Query() *scenequery.Query {
	return c.query
}

// LastOutcome returns the outcome of the most recent tick.
func (c *QueryController) LastOutcome() scenequery.Outcome {
	return scenequery.Outcome(c.lastOutcome.Load())
}

// Regenerations returns how many ticks rebuilt the node list.
func (c *QueryController) Regenerations() uint64 {
	return c.regenerations.Load()
}
