package model

import (
	"errors"
	"slices"
)

// Channel is a bitmask of collision categories.
type Channel uint8

const (
	ChannelWorldStatic  Channel = 1 << 0 // level geometry
	ChannelPawn         Channel = 1 << 1 // physical agents
	ChannelDestructible Channel = 1 << 2 // breakable geometry
	ChannelTrigger      Channel = 1 << 3 // visual/trigger volumes, never block sight
)

// Has reports whether c contains any category of other.
func (c Channel) Has(other Channel) bool {
	return c&other != 0
}

// Hit describes the first blocking contact of an occlusion sweep.
type Hit struct {
	Location Vec3
	Actor    Handle   // actor that owns the blocking shape (InvalidHandle for anonymous geometry)
	Owners   []Handle // ownership chain of Actor, nearest owner first
	Channel  Channel
}

// BelongsTo reports whether the hit shape is h itself or owned by h.
func (hit Hit) BelongsTo(h Handle) bool {
	if !h.IsValid() {
		return false
	}
	return hit.Actor == h || slices.Contains(hit.Owners, h)
}

// Projection is the per-point result of a batch navigation projection.
type Projection struct {
	OK       bool
	Location Vec3
}

// ErrNoNavData is returned by navigation projectors that have no data bound.
var ErrNoNavData = errors.New("no navigation data")
