package scenequery

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/scenequery/internal/model"
)

// Outcome reports what a single Update call did.
type Outcome uint8

const (
	// OutcomeIdle: the query is not set up or its config is invalid.
	OutcomeIdle Outcome = iota
	// OutcomeUnresolved: the context handle did not resolve this tick.
	OutcomeUnresolved
	// OutcomeWaiting: the regeneration timer has not elapsed.
	OutcomeWaiting
	// OutcomeSkipped: the timer elapsed but the context barely moved.
	OutcomeSkipped
	// OutcomeRegenerated: the node list was rebuilt.
	OutcomeRegenerated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeWaiting:
		return "waiting"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRegenerated:
		return "regenerated"
	default:
		return "unknown"
	}
}

// Option configures optional Query collaborators.
type Option func(*Query)

// WithNavigation sets the projector used when EnableProjectToNav is on.
func WithNavigation(nav NavProjector) Option {
	return func(q *Query) {
		q.nav = nav
	}
}

// WithOcclusion sets the probe used when EnableLineOfSightChecks is on.
func WithOcclusion(probe OcclusionProbe) Option {
	return func(q *Query) {
		q.probe = probe
	}
}

// WithDebugDrawer sets the marker sink used when EnableDebugDrawing is on.
func WithDebugDrawer(d DebugDrawer) Option {
	return func(q *Query) {
		if d != nil {
			q.drawer = d
		}
	}
}

// WithLogger sets the diagnostic sink. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(q *Query) {
		if l != nil {
			q.log = l
		}
	}
}

// Query maintains a ring of candidate nodes around a context actor.
//
// It is not safe for concurrent use: one owner calls Update once per frame,
// and any number of callers may query or mark nodes between updates on the
// same goroutine. Node ids are only stable until the next regeneration;
// callers re-resolve cached ids with NodeByID.
type Query struct {
	cfg       Config
	positions PositionSource
	nav       NavProjector
	probe     OcclusionProbe
	drawer    DebugDrawer
	log       *slog.Logger

	context      model.Handle
	lastLocation model.Vec3
	hasBaseline  bool
	intervalLeft time.Duration
	enabled      bool

	nodes      []Node
	generation uint64
	stats      CycleStats
}

// CycleStats times the stages of one regeneration. Stages that did not run
// stay zero.
type CycleStats struct {
	Generate    time.Duration
	Projection  time.Duration
	LineOfSight time.Duration
	Total       time.Duration
}

// New creates an unbound query. Call Setup before Update.
func New(cfg Config, positions PositionSource, opts ...Option) *Query {
	q := &Query{
		cfg:       cfg,
		positions: positions,
		drawer:    nopDrawer{},
		log:       slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

// Setup binds the query to a context actor and validates the config.
// It returns whether the query is enabled. Any previous node list is dropped.
func (q *Query) Setup(h model.Handle) bool {
	q.context = h
	q.nodes = make([]Node, 0, max(q.cfg.NodeCount(), 0))
	q.hasBaseline = false
	q.intervalLeft = 0

	q.enabled = false
	if q.positions == nil {
		q.log.Warn("scene query has no position source, disabling")
		return false
	}
	if _, ok := q.positions.Resolve(h); !ok {
		q.log.Warn("scene query context actor does not resolve, disabling", "handle", h)
		return false
	}
	if err := q.cfg.Validate(); err != nil {
		q.log.Warn("invalid scene query config, disabling", "error", err)
		return false
	}

	if q.cfg.EnableLineOfSightChecks && q.probe == nil {
		q.log.Warn("line of sight checks enabled without an occlusion probe, all nodes stay visible")
	}

	q.enabled = true
	return true
}

// Update advances the query by one tick. It never fails: missing
// collaborators degrade the node list instead.
func (q *Query) Update(elapsed time.Duration) Outcome {
	if !q.enabled {
		return OutcomeIdle
	}

	contextLoc, ok := q.positions.Resolve(q.context)
	if !ok {
		return OutcomeUnresolved
	}

	if q.cfg.EnableDebugDrawing {
		q.drawNodes()
	}

	q.intervalLeft -= elapsed
	if q.intervalLeft > 0 {
		return OutcomeWaiting
	}
	q.intervalLeft = q.cfg.RegenerateInterval

	if q.hasBaseline && q.withinTolerance(contextLoc) {
		return OutcomeSkipped
	}

	q.regenerate(contextLoc)
	return OutcomeRegenerated
}

// withinTolerance reports whether the context moved less than the tolerance
// since the last regeneration.
func (q *Query) withinTolerance(loc model.Vec3) bool {
	tol := q.cfg.LastLocationTolerance
	return q.lastLocation.DistanceSquared(loc) < tol*tol
}

// regenerate rebuilds the node list. The new list only becomes visible once
// every filter has run.
func (q *Query) regenerate(contextLoc model.Vec3) {
	var stats CycleStats
	start := time.Now()

	nodes := GenerateNodes(contextLoc, q.cfg)
	stats.Generate = time.Since(start)

	if q.cfg.EnableProjectToNav {
		t := time.Now()
		nodes = q.projectToNav(nodes)
		stats.Projection = time.Since(t)
	}
	if q.cfg.EnableLineOfSightChecks && q.probe != nil {
		t := time.Now()
		q.lineOfSightChecks(nodes, contextLoc)
		stats.LineOfSight = time.Since(t)
	}
	stats.Total = time.Since(start)

	q.nodes = nodes
	q.generation++
	q.lastLocation = contextLoc
	q.hasBaseline = true
	q.stats = stats

	if q.log.Enabled(context.Background(), slog.LevelDebug) {
		q.log.Debug("scene query cycle",
			"context", q.context,
			"generation", q.generation,
			"nodes", len(nodes),
			"generate", stats.Generate,
			"projection", stats.Projection,
			"line_of_sight", stats.LineOfSight,
			"total", stats.Total)
	}
}

// Stats returns the stage timings of the last regeneration.
func (q *Query) Stats() CycleStats {
	return q.stats
}

// Nodes returns the live node list. Callers may toggle Occupied in place;
// the slice is replaced on the next regeneration.
func (q *Query) Nodes() []Node {
	return q.nodes
}

// Generation counts regenerations since New. A claim taken in an older
// generation has been cleared and must be re-validated.
func (q *Query) Generation() uint64 {
	return q.generation
}

// ContextHandle returns the bound context actor handle.
func (q *Query) ContextHandle() model.Handle {
	return q.context
}

// Enabled reports whether the query passed Setup and its context still resolves.
func (q *Query) Enabled() bool {
	if !q.enabled {
		return false
	}
	_, ok := q.positions.Resolve(q.context)
	return ok
}

// Config returns the config the query was created with.
func (q *Query) Config() Config {
	return q.cfg
}
