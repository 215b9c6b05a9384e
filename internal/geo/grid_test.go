package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/scenequery/internal/model"
)

// testLayout is 4x3 cells of 100 units anchored at the origin:
//
//	y=2  ". # 2 ."
//	y=1  ". . . ."
//	y=0  "    . ."   (two no-data cells)
var testLayout = []string{
	".#2.",
	"....",
	"  ..",
}

func mustGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := ParseLayout(testLayout, DefaultOptions())
	require.NoError(t, err)
	return g
}

func TestParseLayout(t *testing.T) {
	g := mustGrid(t)

	w, h := g.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
	assert.True(t, g.IsLoaded())

	c, ok := g.CellAt(150, 250)
	require.True(t, ok)
	assert.True(t, c.Wall)
	assert.False(t, c.Walkable)

	c, ok = g.CellAt(250, 250)
	require.True(t, ok)
	assert.True(t, c.Walkable)
	assert.Equal(t, 2*DefaultLevelHeight, c.Height)

	_, ok = g.CellAt(50, 50)
	assert.False(t, ok, "blank cells carry no data")

	_, ok = g.CellAt(-10, 50)
	assert.False(t, ok, "outside the grid")
}

func TestParseLayout_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		opts Options
	}{
		{"no rows", nil, DefaultOptions()},
		{"empty rows", []string{"", ""}, DefaultOptions()},
		{"bad char", []string{"..x."}, DefaultOptions()},
		{"zero cell size", []string{"...."}, Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(tt.rows, tt.opts)
			assert.ErrorIs(t, err, ErrBadLayout)
		})
	}
}

func TestCoordConversion(t *testing.T) {
	opts := DefaultOptions()
	opts.OriginX, opts.OriginY = -200, -100
	g, err := ParseLayout(testLayout, opts)
	require.NoError(t, err)

	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin corner", -200, -100, 0, 0},
		{"inside first cell", -101, -1, 0, 0},
		{"second column", -100, -100, 1, 0},
		{"negative outside", -201, -101, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cx, g.CellX(tt.x))
			assert.Equal(t, tt.cy, g.CellY(tt.y))
		})
	}

	assert.Equal(t, model.V3(-150, -50, 0), g.CellCenter(0, 0))
}

func TestGetHeight(t *testing.T) {
	g := mustGrid(t)

	assert.Equal(t, 80.0, g.GetHeight(250, 250, 0))
	assert.Equal(t, 0.0, g.GetHeight(50, 150, 33))
	assert.Equal(t, 33.0, g.GetHeight(50, 50, 33), "no data keeps z")
	assert.Equal(t, 33.0, g.GetHeight(150, 250, 33), "walls keep z")
}

func TestWalls(t *testing.T) {
	g := mustGrid(t)

	walls := g.Walls()
	require.Len(t, walls, 1)
	assert.Equal(t, model.V3(100, 200, 0), walls[0].Min)
	assert.Equal(t, model.V3(200, 300, DefaultWallHeight), walls[0].Max)
}

func TestProjectPoints(t *testing.T) {
	g := mustGrid(t)
	extent := model.V3(16, 16, 512)

	tests := []struct {
		name   string
		point  model.Vec3
		wantOK bool
		want   model.Vec3
	}{
		{"floor cell snaps z", model.V3(50, 150, 70), true, model.V3(50, 150, 0)},
		{"raised cell", model.V3(250, 250, 0), true, model.V3(250, 250, 80)},
		{"wall cell without floor nearby", model.V3(150, 250, 0), false, model.Vec3{}},
		{"next to wall snaps sideways", model.V3(190, 250, 0), true, model.V3(200, 250, 80)},
		{"no data", model.V3(50, 50, 0), false, model.Vec3{}},
		{"outside grid", model.V3(-500, -500, 0), false, model.Vec3{}},
		{"edge of no-data snaps onto floor", model.V3(190, 90, 0), true, model.V3(200, 90, 0)},
	}

	points := make([]model.Vec3, len(tests))
	for i, tt := range tests {
		points[i] = tt.point
	}

	results, err := g.ProjectPoints(points, extent)
	require.NoError(t, err)
	require.Len(t, results, len(tests))

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOK, results[i].OK)
			if tt.wantOK {
				assert.Equal(t, tt.want, results[i].Location)
			}
		})
	}
}

func TestProjectPoints_VerticalExtent(t *testing.T) {
	g := mustGrid(t)

	res, err := g.ProjectPoints([]model.Vec3{model.V3(250, 250, 0)}, model.V3(16, 16, 50))
	require.NoError(t, err)
	assert.False(t, res[0].OK, "level 2 floor is 80 above, out of a 50 extent")
}

func TestProjectPoints_NoNavData(t *testing.T) {
	g := NewEmptyGrid()
	assert.False(t, g.IsLoaded())

	_, err := g.ProjectPoints([]model.Vec3{model.V3(0, 0, 0)}, model.V3(16, 16, 512))
	assert.ErrorIs(t, err, model.ErrNoNavData)

	walls, err := ParseLayout([]string{"##", "##"}, DefaultOptions())
	require.NoError(t, err)
	_, err = walls.ProjectPoints(nil, model.V3(16, 16, 512))
	assert.ErrorIs(t, err, model.ErrNoNavData, "walls alone are not navigation data")
}
