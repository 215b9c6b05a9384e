package scenequery

import (
	"math"

	"github.com/udisondev/scenequery/internal/model"
)

// GenerateNodes lays out NumRings*NodesPerRing nodes on concentric horizontal
// circles around center. Radii step linearly from InnerRadius to OuterRadius
// inclusive; a single ring sits on InnerRadius. Each ring is rotated by
// angleStep/NumRings relative to the previous one so nodes do not line up
// radially.
//
// Output is ring-major and ids are ring*NodesPerRing + index. The config must
// have passed Validate.
func GenerateNodes(center model.Vec3, cfg Config) []Node {
	nodes := make([]Node, 0, cfg.NodeCount())

	var radiusStep float64
	if cfg.NumRings > 1 {
		radiusStep = (cfg.OuterRadius - cfg.InnerRadius) / float64(cfg.NumRings-1)
	}
	angleStep := 2 * math.Pi / float64(cfg.NodesPerRing)
	ringOffset := angleStep / float64(cfg.NumRings)

	for ring := range cfg.NumRings {
		radius := cfg.InnerRadius + radiusStep*float64(ring)
		start := ringOffset * float64(ring)

		for idx := range cfg.NodesPerRing {
			angle := start + angleStep*float64(idx)
			offset := model.V3(radius*math.Sin(angle), radius*math.Cos(angle), 0)
			id := int16(ring*cfg.NodesPerRing + idx)
			nodes = append(nodes, NewNode(center.Add(offset), id))
		}
	}

	return nodes
}
