package geo

import (
	"math"

	"github.com/udisondev/scenequery/internal/model"
)

// CellX converts world X to a cell column. May be out of range.
func (g *Grid) CellX(worldX float64) int {
	return int(math.Floor((worldX - g.originX) / g.cellSize))
}

// CellY converts world Y to a cell row. May be out of range.
func (g *Grid) CellY(worldY float64) int {
	return int(math.Floor((worldY - g.originY) / g.cellSize))
}

// CellCenter returns the world location of the centre of cell (cx, cy)
// at that cell's height.
func (g *Grid) CellCenter(cx, cy int) model.Vec3 {
	var z float64
	if c, ok := g.cell(cx, cy); ok {
		z = c.Height
	}
	return model.V3(
		g.originX+(float64(cx)+0.5)*g.cellSize,
		g.originY+(float64(cy)+0.5)*g.cellSize,
		z,
	)
}

// CellBounds returns the horizontal min/max corners of cell (cx, cy).
func (g *Grid) CellBounds(cx, cy int) (minX, minY, maxX, maxY float64) {
	minX = g.originX + float64(cx)*g.cellSize
	minY = g.originY + float64(cy)*g.cellSize
	return minX, minY, minX + g.cellSize, minY + g.cellSize
}

// InBounds reports whether (cx, cy) is inside the grid.
func (g *Grid) InBounds(cx, cy int) bool {
	return cx >= 0 && cx < g.width && cy >= 0 && cy < g.height
}
