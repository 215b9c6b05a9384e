package scenequery

import (
	"errors"

	"github.com/udisondev/scenequery/internal/model"
)

// projectToNav snaps every node onto the navigable surface in one batch and
// drops nodes that have no navigable ground within the projection extent.
// Survivors keep their ids. Without navigation data the list is emptied.
func (q *Query) projectToNav(nodes []Node) []Node {
	if q.nav == nil {
		q.log.Warn("project to nav enabled without navigation data, clearing nodes")
		return nodes[:0]
	}

	points := make([]model.Vec3, len(nodes))
	for i := range nodes {
		points[i] = nodes[i].Location
	}

	results, err := q.nav.ProjectPoints(points, q.cfg.ProjectionExtent)
	if err != nil {
		if errors.Is(err, model.ErrNoNavData) {
			q.log.Warn("no navigation data for scene query, clearing nodes", "context", q.context)
		} else {
			q.log.Warn("navigation projection failed, clearing nodes", "context", q.context, "error", err)
		}
		return nodes[:0]
	}
	if len(results) != len(nodes) {
		q.log.Warn("navigation projection size mismatch, clearing nodes",
			"nodes", len(nodes),
			"results", len(results))
		return nodes[:0]
	}

	// Compact in place; the write index never passes the read index.
	kept := nodes[:0]
	for i, res := range results {
		if !res.OK {
			continue
		}
		node := nodes[i]
		node.Location = res.Location
		kept = append(kept, node)
	}
	return kept
}
