package ai

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/udisondev/scenequery/internal/model"
)

// Orbiter walks an actor around a fixed center. It drives the context actor
// in the ring demo so the scene query has something to follow.
type Orbiter struct {
	handle model.Handle
	mover  Mover
	center model.Vec3
	radius float64
	speed  float64 // radians per second

	running atomic.Bool
	angle   float64
}

// NewOrbiter creates an orbiter starting north of center.
func NewOrbiter(h model.Handle, mover Mover, center model.Vec3, radius, speed float64) *Orbiter {
	return &Orbiter{
		handle: h,
		mover:  mover,
		center: center,
		radius: radius,
		speed:  speed,
	}
}

// Start starts the orbiter
func (o *Orbiter) Start() {
	o.running.Store(true)
}

// Stop stops the orbiter
func (o *Orbiter) Stop() {
	o.running.Store(false)
}

// CurrentIntention returns current intention
func (o *Orbiter) CurrentIntention() Intention {
	if o.running.Load() {
		return IntentionMove
	}
	return IntentionIdle
}

// Position returns the point on the orbit for angle a. Angle 0 is north
// (+Y), increasing clockwise towards +X.
func (o *Orbiter) Position(a float64) model.Vec3 {
	return o.center.Add(model.V3(o.radius*math.Sin(a), o.radius*math.Cos(a), 0))
}

// Tick advances the orbit angle by speed*dt.
func (o *Orbiter) Tick(dt time.Duration) {
	if !o.running.Load() {
		return
	}

	o.angle = math.Mod(o.angle+o.speed*dt.Seconds(), 2*math.Pi)
	if err := o.mover.SetLocation(o.handle, o.Position(o.angle)); err != nil {
		slog.Warn("orbiter cannot move, stopping", "handle", o.handle, "error", err)
		o.Stop()
	}
}
