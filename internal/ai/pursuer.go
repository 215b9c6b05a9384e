package ai

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/scenequery/internal/model"
	"github.com/udisondev/scenequery/internal/scenequery"
)

// arriveDistance is how close a pursuer must get to its node to hold it.
const arriveDistance = 1.0

// Pursuer claims a free node around the query's context actor and walks to it.
//
// A claim is tied to the query generation it was taken in. Once the query
// regenerates, occupancy is cleared and the pursuer re-validates the id it
// held: it re-claims the node if it is still visible and free, otherwise it
// picks the closest free node to itself.
type Pursuer struct {
	handle model.Handle
	mover  Mover
	query  *scenequery.Query
	speed  float64 // units per second

	running   atomic.Bool
	intention atomic.Int32

	node       int16
	generation uint64
}

// NewPursuer creates a pursuer for actor h moving at speed units per second.
func NewPursuer(h model.Handle, mover Mover, q *scenequery.Query, speed float64) *Pursuer {
	return &Pursuer{
		handle: h,
		mover:  mover,
		query:  q,
		speed:  speed,
		node:   scenequery.NoNodeID,
	}
}

// Start starts the pursuer
func (p *Pursuer) Start() {
	p.running.Store(true)
	p.setIntention(IntentionIdle)
}

// Stop stops the pursuer and releases its node.
// Call it from the tick goroutine or after the tick loop returned.
func (p *Pursuer) Stop() {
	p.running.Store(false)
	p.release()
	p.setIntention(IntentionIdle)
}

// CurrentIntention returns current intention
func (p *Pursuer) CurrentIntention() Intention {
	return Intention(p.intention.Load())
}

// ClaimedNode returns the id of the node the pursuer holds.
func (p *Pursuer) ClaimedNode() int16 {
	if !p.holdsClaim() {
		return scenequery.NoNodeID
	}
	return p.node
}

// Tick re-validates the claim and moves one step towards the claimed node.
func (p *Pursuer) Tick(dt time.Duration) {
	if !p.running.Load() {
		return
	}

	loc, ok := p.mover.Resolve(p.handle)
	if !ok {
		p.release()
		p.setIntention(IntentionIdle)
		return
	}

	target, ok := p.validate(loc)
	if !ok {
		p.setIntention(IntentionIdle)
		return
	}

	p.moveTowards(loc, target.Location, dt)
}

// validate returns the node the pursuer should walk to, claiming one if needed.
func (p *Pursuer) validate(loc model.Vec3) (*scenequery.Node, bool) {
	if p.holdsClaim() {
		if node, ok := p.query.NodeByID(p.node); ok {
			return node, true
		}
	}

	if p.node != scenequery.NoNodeID && p.generation != p.query.Generation() {
		// Regenerated: our old id may still be a good spot.
		if node, ok := p.query.NodeByID(p.node); ok && node.IsFree() {
			p.claim(node)
			return node, true
		}
	}

	node, ok := p.query.ClosestFreeNode(loc)
	if !ok {
		p.release()
		return nil, false
	}

	p.release()
	p.claim(node)

	if IsDebugEnabled() {
		slog.Debug("pursuer claimed node",
			"handle", p.handle,
			"node", node.ID,
			"free", p.query.FreeCount())
	}
	return node, true
}

// holdsClaim reports whether the current id was claimed in the live generation.
func (p *Pursuer) holdsClaim() bool {
	return p.node != scenequery.NoNodeID && p.generation == p.query.Generation()
}

func (p *Pursuer) claim(node *scenequery.Node) {
	node.Occupied = true
	p.node = node.ID
	p.generation = p.query.Generation()
}

// release frees the held node. Stale claims were already cleared by the query.
func (p *Pursuer) release() {
	if p.holdsClaim() {
		p.query.SetNodeOccupied(p.node, false)
	}
	p.node = scenequery.NoNodeID
}

func (p *Pursuer) moveTowards(from, to model.Vec3, dt time.Duration) {
	dist := from.Distance(to)
	if dist <= arriveDistance {
		p.setIntention(IntentionHold)
		return
	}

	step := p.speed * dt.Seconds()
	next := to
	if step < dist {
		next = from.Lerp(to, step/dist)
	}

	if err := p.mover.SetLocation(p.handle, next); err != nil {
		slog.Warn("pursuer cannot move, stopping", "handle", p.handle, "error", err)
		p.Stop()
		return
	}

	if step >= dist {
		p.setIntention(IntentionHold)
	} else {
		p.setIntention(IntentionMove)
	}
}

func (p *Pursuer) setIntention(intention Intention) {
	old := Intention(p.intention.Swap(int32(intention)))
	if old != intention && IsDebugEnabled() {
		slog.Debug("intention changed",
			"handle", p.handle,
			"from", old,
			"to", intention)
	}
}
