package scenequery

import "github.com/udisondev/scenequery/internal/model"

// drawNodes pushes the current node list to the debug drawer:
// green for nodes that see the context actor, red otherwise, yellow when claimed.
func (q *Query) drawNodes() {
	if len(q.nodes) == 0 {
		return
	}

	markers := make([]model.Marker, len(q.nodes))
	for i := range q.nodes {
		color := model.ColorRed
		switch {
		case q.nodes[i].Occupied:
			color = model.ColorYellow
		case q.nodes[i].CanSeeContext:
			color = model.ColorGreen
		}
		markers[i] = model.Marker{Location: q.nodes[i].Location, Color: color}
	}
	q.drawer.DrawMarkers(markers)
}
