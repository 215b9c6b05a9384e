package geo

import (
	"math"

	"github.com/udisondev/scenequery/internal/model"
)

// ProjectPoints snaps each point onto the nearest walkable cell whose
// footprint overlaps the horizontal extent around it and whose floor lies
// within extent.Z vertically. The snapped point keeps its X/Y clamped into
// that cell and takes the floor height.
//
// Returns model.ErrNoNavData if the grid has no walkable cells.
func (g *Grid) ProjectPoints(points []model.Vec3, extent model.Vec3) ([]model.Projection, error) {
	if !g.IsLoaded() {
		return nil, model.ErrNoNavData
	}

	out := make([]model.Projection, len(points))
	for i, p := range points {
		out[i] = g.projectPoint(p, extent)
	}
	return out, nil
}

func (g *Grid) projectPoint(p, extent model.Vec3) model.Projection {
	minCX := max(g.CellX(p.X-extent.X), 0)
	maxCX := min(g.CellX(p.X+extent.X), g.width-1)
	minCY := max(g.CellY(p.Y-extent.Y), 0)
	maxCY := min(g.CellY(p.Y+extent.Y), g.height-1)

	var (
		best  model.Projection
		bestD = math.MaxFloat64
	)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			c, ok := g.cell(cx, cy)
			if !ok || !c.Walkable {
				continue
			}
			if math.Abs(p.Z-c.Height) > extent.Z {
				continue
			}

			x0, y0, x1, y1 := g.CellBounds(cx, cy)
			snapped := model.V3(clamp(p.X, x0, x1), clamp(p.Y, y0, y1), c.Height)

			dx, dy := snapped.X-p.X, snapped.Y-p.Y
			if d := dx*dx + dy*dy; d < bestD {
				bestD = d
				best = model.Projection{OK: true, Location: snapped}
			}
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
