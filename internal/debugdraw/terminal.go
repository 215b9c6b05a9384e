package debugdraw

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/scenequery/internal/model"
)

const (
	markerRune = '●'
	centerRune = '+'
)

// Terminal draws markers top-down on a tcell screen, north up.
// Terminal cells are about twice as tall as wide, so one row covers
// twice the world distance of one column.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	scale  float64 // world units per column
	center model.Vec3
}

// NewTerminal wraps an initialised screen. unitsPerColumn <= 0 falls back to 50.
func NewTerminal(screen tcell.Screen, unitsPerColumn float64) *Terminal {
	if unitsPerColumn <= 0 {
		unitsPerColumn = 50
	}
	return &Terminal{screen: screen, scale: unitsPerColumn}
}

// Follow recentres the view on loc for subsequent frames.
func (t *Terminal) Follow(loc model.Vec3) {
	t.mu.Lock()
	t.center = loc
	t.mu.Unlock()
}

// CellFor maps a world location to a screen cell.
func (t *Terminal) CellFor(loc model.Vec3) (x, y int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cellFor(loc)
}

func (t *Terminal) cellFor(loc model.Vec3) (int, int, bool) {
	w, h := t.screen.Size()
	dx := (loc.X - t.center.X) / t.scale
	dy := (loc.Y - t.center.Y) / (t.scale * 2)

	x := w/2 + int(math.Round(dx))
	y := h/2 - int(math.Round(dy))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

// DrawMarkers implements scenequery.DebugDrawer.
func (t *Terminal) DrawMarkers(markers []model.Marker) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()

	w, h := t.screen.Size()
	t.screen.SetContent(w/2, h/2, centerRune, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	for _, m := range markers {
		x, y, ok := t.cellFor(m.Location)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(m.Color.R), int32(m.Color.G), int32(m.Color.B)))
		t.screen.SetContent(x, y, markerRune, nil, style)
	}

	t.screen.Show()
}
