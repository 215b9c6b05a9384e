package scenequery

import (
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/scenequery/internal/model"
)

// LineOfSightChannels are the collision categories that can block a node's
// view of the context actor. Trigger and purely visual volumes never do.
const LineOfSightChannels = model.ChannelWorldStatic | model.ChannelPawn | model.ChannelDestructible

// lineOfSightChecks flags every node that cannot see the context actor.
// A sweep that ends on the context actor, or something it owns, counts as clear.
func (q *Query) lineOfSightChecks(nodes []Node, contextLoc model.Vec3) {
	workers := q.cfg.LineOfSightWorkers
	if workers <= 1 || len(nodes) < 2 {
		for i := range nodes {
			nodes[i].CanSeeContext = q.canSee(nodes[i].Location, contextLoc)
		}
		return
	}

	// Each goroutine writes only its own element.
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range nodes {
		g.Go(func() error {
			nodes[i].CanSeeContext = q.canSee(nodes[i].Location, contextLoc)
			return nil
		})
	}
	_ = g.Wait()
}

func (q *Query) canSee(nodeLoc, contextLoc model.Vec3) bool {
	start := nodeLoc
	start.Z += q.cfg.LineOfSightHeightOffset

	hit, blocked := q.probe.SweepSphere(start, contextLoc, q.cfg.SphereTraceRadius, LineOfSightChannels)
	if !blocked {
		return true
	}
	return hit.BelongsTo(q.context)
}
