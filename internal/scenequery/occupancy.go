package scenequery

import (
	"math"

	"github.com/udisondev/scenequery/internal/model"
)

// SetNodeOccupied marks a node as claimed or released. Unknown ids are
// ignored: the node may already have been dropped by a regeneration.
func (q *Query) SetNodeOccupied(id int16, occupied bool) {
	if node, ok := q.NodeByID(id); ok {
		node.Occupied = occupied
	}
}

// ClosestFreeNode returns the visible, unoccupied node nearest to loc.
// Equidistant candidates resolve to the first one in ring-major order.
// The pointer is valid until the next regeneration.
func (q *Query) ClosestFreeNode(loc model.Vec3) (*Node, bool) {
	var found *Node
	best := math.MaxFloat64

	for i := range q.nodes {
		node := &q.nodes[i]
		if !node.IsFree() {
			continue
		}
		if d := loc.DistanceSquared(node.Location); d < best {
			best = d
			found = node
		}
	}

	return found, found != nil
}

// NodeByID returns the live node with the given id.
// Use it to re-validate a cached node after an Update.
func (q *Query) NodeByID(id int16) (*Node, bool) {
	if id == NoNodeID {
		return nil, false
	}
	for i := range q.nodes {
		if q.nodes[i].ID == id {
			return &q.nodes[i], true
		}
	}
	return nil, false
}

// FreeCount returns the number of nodes ClosestFreeNode could return.
func (q *Query) FreeCount() int {
	n := 0
	for i := range q.nodes {
		if q.nodes[i].IsFree() {
			n++
		}
	}
	return n
}
