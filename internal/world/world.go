package world

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/scenequery/internal/model"
)

// ErrUnknownActor is returned for handles that do not resolve to a live actor.
var ErrUnknownActor = errors.New("unknown actor")

// Actor is one live object in the host world.
type Actor struct {
	Handle   model.Handle
	Name     string
	Location model.Vec3
	Owner    model.Handle
}

// Registry owns every live actor and answers handle lookups.
// Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	actors map[model.Handle]*Actor
	ids    *HandleGenerator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actors: make(map[model.Handle]*Actor, 64),
		ids:    NewHandleGenerator(),
	}
}

// Spawn adds an actor and returns its handle. owner may be InvalidHandle.
func (r *Registry) Spawn(name string, loc model.Vec3, owner model.Handle) model.Handle {
	h := r.ids.Next()

	r.mu.Lock()
	r.actors[h] = &Actor{Handle: h, Name: name, Location: loc, Owner: owner}
	count := len(r.actors)
	r.mu.Unlock()

	slog.Debug("actor spawned", "handle", h, "name", name, "owner", owner, "total", count)
	return h
}

// Despawn removes an actor. Handles held elsewhere stop resolving.
func (r *Registry) Despawn(h model.Handle) {
	r.mu.Lock()
	_, ok := r.actors[h]
	delete(r.actors, h)
	r.mu.Unlock()

	if ok {
		slog.Debug("actor despawned", "handle", h)
	}
}

// SetLocation moves an actor.
func (r *Registry) SetLocation(h model.Handle, loc model.Vec3) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actors[h]
	if !ok {
		return fmt.Errorf("moving actor %d: %w", h, ErrUnknownActor)
	}
	a.Location = loc
	return nil
}

// Resolve returns the live location of h.
func (r *Registry) Resolve(h model.Handle) (model.Vec3, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.actors[h]
	if !ok {
		return model.Vec3{}, false
	}
	return a.Location, true
}

// Get returns a copy of the actor.
func (r *Registry) Get(h model.Handle) (Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.actors[h]
	if !ok {
		return Actor{}, false
	}
	return *a, true
}

// Owners returns the ownership chain of h, nearest owner first.
// The chain ends with the first owner that is no longer alive.
func (r *Registry) Owners(h model.Handle) []model.Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chain []model.Handle
	seen := map[model.Handle]struct{}{h: {}}

	a, ok := r.actors[h]
	for ok && a.Owner.IsValid() {
		if _, loop := seen[a.Owner]; loop {
			break
		}
		seen[a.Owner] = struct{}{}
		chain = append(chain, a.Owner)
		a, ok = r.actors[a.Owner]
	}
	return chain
}

// IsOwnedBy reports whether h is owner or is owned by owner, directly or transitively.
func (r *Registry) IsOwnedBy(h, owner model.Handle) bool {
	if h == owner {
		return h.IsValid()
	}
	for _, o := range r.Owners(h) {
		if o == owner {
			return true
		}
	}
	return false
}

// Count returns the number of live actors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actors)
}
