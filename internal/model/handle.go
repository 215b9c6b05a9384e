package model

// Handle is a weak reference to an actor in the host world.
// It never keeps the actor alive; resolve it through the world every time
// a position is needed. Handles are never reused once released.
type Handle uint32

// InvalidHandle refers to nothing.
const InvalidHandle Handle = 0

// IsValid reports whether h was ever issued.
// A valid handle can still be unresolvable if its actor despawned.
func (h Handle) IsValid() bool {
	return h != InvalidHandle
}
