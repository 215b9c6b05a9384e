package scenequery

import "github.com/udisondev/scenequery/internal/model"

// PositionSource resolves weak actor handles.
type PositionSource interface {
	// Resolve returns the actor location, or false if the handle no longer
	// refers to a live actor.
	Resolve(h model.Handle) (model.Vec3, bool)
}

// NavProjector snaps points onto the navigable surface in one batch.
type NavProjector interface {
	// ProjectPoints returns one projection per input point, in order.
	// It returns model.ErrNoNavData when no navigation data is bound.
	ProjectPoints(points []model.Vec3, extent model.Vec3) ([]model.Projection, error)
}

// OcclusionProbe performs thick visibility sweeps.
// Implementations must be safe for concurrent use when the query runs
// parallel line of sight workers.
type OcclusionProbe interface {
	// SweepSphere moves a sphere of the given radius from start to end and
	// returns the first blocking hit among the channels, if any.
	SweepSphere(start, end model.Vec3, radius float64, channels model.Channel) (model.Hit, bool)
}

// DebugDrawer renders transient markers. It never affects query state.
type DebugDrawer interface {
	DrawMarkers(markers []model.Marker)
}

type nopDrawer struct{}

func (nopDrawer) DrawMarkers([]model.Marker) {}
