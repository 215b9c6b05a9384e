package geo

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/scenequery/internal/model"
)

// ErrBadLayout is returned for malformed grid layouts.
var ErrBadLayout = errors.New("bad grid layout")

// Cell is one column of navigation data.
type Cell struct {
	Height   float64
	Walkable bool
	Wall     bool
}

// Grid is a 2.5D heightfield of navigation cells.
// Immutable after construction, so safe for concurrent readers.
type Grid struct {
	originX, originY float64
	cellSize         float64
	wallHeight       float64
	width, height    int
	cells            []Cell
	hasData          []bool
	walkable         int
}

// Options describes how a layout maps onto world space.
type Options struct {
	// World location of the south-west corner of the grid.
	OriginX, OriginY float64
	CellSize         float64
	LevelHeight      float64
	WallHeight       float64
}

// DefaultOptions returns 1m cells anchored at the world origin.
func DefaultOptions() Options {
	return Options{
		CellSize:    DefaultCellSize,
		LevelHeight: DefaultLevelHeight,
		WallHeight:  DefaultWallHeight,
	}
}

// NewEmptyGrid returns a grid without any navigation data.
// Projection on it always reports model.ErrNoNavData.
func NewEmptyGrid() *Grid {
	return &Grid{cellSize: DefaultCellSize}
}

// ParseLayout builds a grid from ASCII rows. The first row is the northern
// edge (highest Y); columns grow eastwards. Short rows are padded with no-data cells.
//
//	' '     no data
//	'.'     floor at level 0
//	'1'-'9' floor at level n
//	'#'     wall
func ParseLayout(rows []string, opts Options) (*Grid, error) {
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("cell size %.2f: %w", opts.CellSize, ErrBadLayout)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrBadLayout)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return nil, fmt.Errorf("empty rows: %w", ErrBadLayout)
	}

	g := &Grid{
		originX:    opts.OriginX,
		originY:    opts.OriginY,
		cellSize:   opts.CellSize,
		wallHeight: opts.WallHeight,
		width:      width,
		height:     len(rows),
		cells:      make([]Cell, width*len(rows)),
		hasData:    make([]bool, width*len(rows)),
	}

	for r, row := range rows {
		cy := len(rows) - 1 - r
		for cx := range len(row) {
			ch := row[cx]
			idx := cy*width + cx
			switch {
			case ch == CellNoData:
			case ch == CellFloor:
				g.cells[idx] = Cell{Walkable: true}
				g.hasData[idx] = true
				g.walkable++
			case ch == CellWall:
				g.cells[idx] = Cell{Wall: true}
				g.hasData[idx] = true
			case ch >= '1' && ch <= '0'+maxLevel:
				level := float64(ch - '0')
				g.cells[idx] = Cell{Height: level * opts.LevelHeight, Walkable: true}
				g.hasData[idx] = true
				g.walkable++
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q: %w", r, cx, ch, ErrBadLayout)
			}
		}
	}

	slog.Debug("navigation grid parsed",
		"width", g.width,
		"height", g.height,
		"walkable", g.walkable,
		"cell_size", g.cellSize)
	return g, nil
}

// IsLoaded reports whether any walkable cell exists.
func (g *Grid) IsLoaded() bool {
	return g.walkable > 0
}

// Walkable returns the number of walkable cells.
func (g *Grid) Walkable() int {
	return g.walkable
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// cell returns the cell at (cx, cy) if it carries data.
func (g *Grid) cell(cx, cy int) (Cell, bool) {
	if !g.InBounds(cx, cy) {
		return Cell{}, false
	}
	idx := cy*g.width + cx
	if !g.hasData[idx] {
		return Cell{}, false
	}
	return g.cells[idx], true
}

// CellAt returns the cell under a world location.
func (g *Grid) CellAt(worldX, worldY float64) (Cell, bool) {
	return g.cell(g.CellX(worldX), g.CellY(worldY))
}

// GetHeight returns the floor height under (x, y), or z unchanged when the
// location has no walkable data.
func (g *Grid) GetHeight(x, y, z float64) float64 {
	c, ok := g.CellAt(x, y)
	if !ok || !c.Walkable {
		return z
	}
	return c.Height
}

// Box is an axis aligned box in world space.
type Box struct {
	Min, Max model.Vec3
}

// Walls returns one box per wall cell, standing on height 0 and
// WallHeight tall. Order is row-major from the south-west corner.
func (g *Grid) Walls() []Box {
	var walls []Box
	for cy := range g.height {
		for cx := range g.width {
			c, ok := g.cell(cx, cy)
			if !ok || !c.Wall {
				continue
			}
			minX, minY, maxX, maxY := g.CellBounds(cx, cy)
			walls = append(walls, Box{
				Min: model.V3(minX, minY, c.Height),
				Max: model.V3(maxX, maxY, c.Height+g.wallHeight),
			})
		}
	}
	return walls
}
