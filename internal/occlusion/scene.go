// Package occlusion answers thick line of sight queries against a scene of
// signed distance shapes built with sdfx.
package occlusion

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/udisondev/scenequery/internal/model"
)

// Sphere tracing tuning.
const (
	// minStep keeps the march moving when the sphere grazes a surface.
	minStep = 1.0
	// contactEpsilon is how close the sphere surface must get to count as a hit.
	contactEpsilon = 0.01
)

// Locator resolves actor handles and their owners. world.Registry satisfies it.
type Locator interface {
	Resolve(h model.Handle) (model.Vec3, bool)
	Owners(h model.Handle) []model.Handle
}

type obstacle struct {
	actor   model.Handle
	channel model.Channel
	shape   sdf.SDF3
	// follow evaluates the shape relative to the actor's live location.
	follow bool
}

// Scene is a set of collision shapes. Safe for concurrent sweeps; adding
// shapes takes an exclusive lock.
type Scene struct {
	mu        sync.RWMutex
	obstacles []obstacle
	locator   Locator
}

// NewScene creates an empty scene. locator may be nil when no shape follows
// an actor and no ownership lookups are needed.
func NewScene(locator Locator) *Scene {
	return &Scene{locator: locator}
}

// AddBox adds a static axis aligned box between lo and hi.
// actor may be InvalidHandle for anonymous level geometry.
func (s *Scene) AddBox(actor model.Handle, channel model.Channel, lo, hi model.Vec3) error {
	size := hi.Sub(lo)
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return fmt.Errorf("box %+v..%+v: non-positive size", lo, hi)
	}

	box, err := sdf.Box3D(toV3(size), 0)
	if err != nil {
		return fmt.Errorf("building box: %w", err)
	}
	center := lo.Add(size.Scale(0.5))
	shape := sdf.Transform3D(box, sdf.Translate3d(toV3(center)))

	s.add(obstacle{actor: actor, channel: channel, shape: shape})
	return nil
}

// AddPawn attaches an upright capsule-like cylinder to a live actor.
// The cylinder is centred on the actor location and moves with it.
func (s *Scene) AddPawn(actor model.Handle, radius, height float64) error {
	if !actor.IsValid() {
		return errors.New("pawn needs a valid actor handle")
	}
	if s.locator == nil {
		return fmt.Errorf("pawn %d: scene has no locator", actor)
	}

	cyl, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return fmt.Errorf("building pawn %d: %w", actor, err)
	}

	s.add(obstacle{actor: actor, channel: model.ChannelPawn, shape: cyl, follow: true})
	return nil
}

// Remove drops every shape attached to actor.
func (s *Scene) Remove(actor model.Handle) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.actor != actor {
			kept = append(kept, o)
		}
	}
	removed := len(s.obstacles) - len(kept)
	clear(s.obstacles[len(kept):])
	s.obstacles = kept
	return removed
}

// Len returns the number of shapes.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.obstacles)
}

func (s *Scene) add(o obstacle) {
	s.mu.Lock()
	s.obstacles = append(s.obstacles, o)
	s.mu.Unlock()
}

// nearest returns the distance from p to the closest shape in the channel
// mask that is not skipped, and that shape's index (-1 if none).
func (s *Scene) nearest(p model.Vec3, channels model.Channel, skip []bool) (float64, int) {
	best := math.Inf(1)
	idx := -1

	for i := range s.obstacles {
		if skip != nil && skip[i] {
			continue
		}
		if d, ok := s.distance(&s.obstacles[i], p, channels); ok && d < best {
			best = d
			idx = i
		}
	}
	return best, idx
}

// distance evaluates one shape at p. ok is false for shapes outside the
// channel mask and for pawns whose actor no longer resolves.
func (s *Scene) distance(o *obstacle, p model.Vec3, channels model.Channel) (float64, bool) {
	if !channels.Has(o.channel) {
		return 0, false
	}

	local := p
	if o.follow {
		anchor, ok := s.locator.Resolve(o.actor)
		if !ok {
			return 0, false
		}
		local = p.Sub(anchor)
	}
	return o.shape.Evaluate(toV3(local)), true
}

func toV3(v model.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
