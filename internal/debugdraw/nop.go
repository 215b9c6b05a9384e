// Package debugdraw provides sinks for scene query debug markers.
package debugdraw

import "github.com/udisondev/scenequery/internal/model"

// Nop discards markers. Use it in production builds.
type Nop struct{}

// DrawMarkers implements scenequery.DebugDrawer.
func (Nop) DrawMarkers([]model.Marker) {}

// Drawer is the sink contract shared by every renderer here.
type Drawer interface {
	DrawMarkers(markers []model.Marker)
}

// Multi fans markers out to several drawers.
type Multi []Drawer

// DrawMarkers implements scenequery.DebugDrawer.
func (m Multi) DrawMarkers(markers []model.Marker) {
	for _, d := range m {
		d.DrawMarkers(markers)
	}
}
