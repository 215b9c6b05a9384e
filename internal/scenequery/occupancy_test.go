package scenequery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/scenequery/internal/model"
)

// queryWithNodes returns a query whose live list is exactly nodes.
func queryWithNodes(nodes ...Node) *Query {
	q := New(DefaultConfig(), newFakePositions())
	q.nodes = nodes
	return q
}

func TestClosestFreeNode_Empty(t *testing.T) {
	q := queryWithNodes()
	node, ok := q.ClosestFreeNode(model.V3(0, 0, 0))
	assert.False(t, ok)
	assert.Nil(t, node)
}

func TestClosestFreeNode_SkipsOccupiedAndBlocked(t *testing.T) {
	q := queryWithNodes(
		NewNode(model.V3(10, 0, 0), 0),
		NewNode(model.V3(20, 0, 0), 1),
		NewNode(model.V3(30, 0, 0), 2),
	)
	q.nodes[1].CanSeeContext = false

	node, ok := q.ClosestFreeNode(model.V3(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, int16(0), node.ID)

	q.SetNodeOccupied(0, true)
	node, ok = q.ClosestFreeNode(model.V3(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, int16(2), node.ID, "occupied closest and blocked second are skipped")

	q.SetNodeOccupied(2, true)
	_, ok = q.ClosestFreeNode(model.V3(0, 0, 0))
	assert.False(t, ok)
	assert.Zero(t, q.FreeCount())

	q.SetNodeOccupied(0, false)
	node, ok = q.ClosestFreeNode(model.V3(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, int16(0), node.ID, "releasing restores eligibility")
}

func TestClosestFreeNode_TieBreaksInRingMajorOrder(t *testing.T) {
	q := queryWithNodes(
		NewNode(model.V3(0, 10, 0), 0),
		NewNode(model.V3(10, 0, 0), 1),
		NewNode(model.V3(0, -10, 0), 2),
	)

	for range 3 {
		node, ok := q.ClosestFreeNode(model.V3(0, 0, 0))
		require.True(t, ok)
		assert.Equal(t, int16(0), node.ID)
	}
}

func TestClosestFreeNode_ReturnsLiveNode(t *testing.T) {
	q := queryWithNodes(NewNode(model.V3(5, 5, 0), 0))

	node, ok := q.ClosestFreeNode(model.V3(0, 0, 0))
	require.True(t, ok)
	node.Occupied = true

	assert.True(t, q.Nodes()[0].Occupied, "pointer refers to the live list entry")
}

func TestClaimProtocol_NeverHandsOutClaimedNode(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	require.True(t, f.q.Setup(contextHandle))
	require.Equal(t, OutcomeRegenerated, f.q.Update(0))

	seen := make(map[int16]bool)
	seeker := model.V3(900, 0, 0)
	for range 48 {
		node, ok := f.q.ClosestFreeNode(seeker)
		require.True(t, ok)
		require.False(t, seen[node.ID], "node %d handed out twice", node.ID)
		seen[node.ID] = true
		f.q.SetNodeOccupied(node.ID, true)
	}

	_, ok := f.q.ClosestFreeNode(seeker)
	assert.False(t, ok)
}

func TestSetNodeOccupied_UnknownID(t *testing.T) {
	q := queryWithNodes(NewNode(model.V3(0, 0, 0), 4))

	assert.NotPanics(t, func() {
		q.SetNodeOccupied(99, true)
		q.SetNodeOccupied(NoNodeID, true)
	})
	assert.False(t, q.Nodes()[0].Occupied)
}

func TestNodeByID(t *testing.T) {
	q := queryWithNodes(
		NewNode(model.V3(1, 0, 0), 3),
		NewNode(model.V3(2, 0, 0), 7),
	)

	node, ok := q.NodeByID(7)
	require.True(t, ok)
	assert.Equal(t, model.V3(2, 0, 0), node.Location)

	_, ok = q.NodeByID(4)
	assert.False(t, ok, "pruned ids are not found")

	_, ok = q.NodeByID(NoNodeID)
	assert.False(t, ok)
}
