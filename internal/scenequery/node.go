package scenequery

import "github.com/udisondev/scenequery/internal/model"

// NoNodeID marks an unset node reference.
const NoNodeID int16 = -1

// Node is one candidate location around the context actor.
// Value type; the live list is replaced wholesale on every regeneration.
type Node struct {
	Location model.Vec3
	ID       int16

	// CanSeeContext starts true so every node is usable when line of sight
	// checks are disabled.
	CanSeeContext bool
	// Occupied is caller-managed and never survives a regeneration.
	Occupied bool
}

// NewNode creates a visible, unoccupied node.
func NewNode(loc model.Vec3, id int16) Node {
	return Node{
		Location:      loc,
		ID:            id,
		CanSeeContext: true,
	}
}

// IsFree reports whether the node can be handed out to a new claimant.
func (n *Node) IsFree() bool {
	return n.CanSeeContext && !n.Occupied
}
