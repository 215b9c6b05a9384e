package scenequery

import (
	"sync"

	"github.com/udisondev/scenequery/internal/model"
)

// fakePositions is a mutable handle → location table.
type fakePositions struct {
	locs map[model.Handle]model.Vec3
}

func newFakePositions() *fakePositions {
	return &fakePositions{locs: make(map[model.Handle]model.Vec3)}
}

func (f *fakePositions) Resolve(h model.Handle) (model.Vec3, bool) {
	loc, ok := f.locs[h]
	return loc, ok
}

// fakeNav projects through a callback and counts batches.
type fakeNav struct {
	project func(p model.Vec3) model.Projection
	err     error
	short   bool
	batches int
	lastLen int
}

func (f *fakeNav) ProjectPoints(points []model.Vec3, _ model.Vec3) ([]model.Projection, error) {
	f.batches++
	f.lastLen = len(points)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Projection, len(points))
	for i, p := range points {
		out[i] = f.project(p)
	}
	if f.short {
		return out[:len(out)-1], nil
	}
	return out, nil
}

// fakeProbe answers sweeps through a callback; safe for concurrent use.
type fakeProbe struct {
	mu     sync.Mutex
	sweeps int
	hit    func(start, end model.Vec3) (model.Hit, bool)
}

func (f *fakeProbe) SweepSphere(start, end model.Vec3, _ float64, channels model.Channel) (model.Hit, bool) {
	f.mu.Lock()
	f.sweeps++
	f.mu.Unlock()
	if channels.Has(model.ChannelTrigger) {
		panic("trigger volumes must not be swept")
	}
	return f.hit(start, end)
}

func (f *fakeProbe) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps
}

type recordingDrawer struct {
	frames [][]model.Marker
}

func (r *recordingDrawer) DrawMarkers(markers []model.Marker) {
	r.frames = append(r.frames, markers)
}

func passThrough(p model.Vec3) model.Projection {
	return model.Projection{OK: true, Location: p}
}
