package testutil

import (
	"testing"

	"github.com/udisondev/scenequery/internal/model"
	"github.com/udisondev/scenequery/internal/world"
)

// NewWorld returns a fresh registry with a single unowned actor at loc.
func NewWorld(t testing.TB, name string, loc model.Vec3) (*world.Registry, model.Handle) {
	t.Helper()

	reg := world.NewRegistry()
	h := reg.Spawn(name, loc, model.InvalidHandle)
	if !h.IsValid() {
		t.Fatalf("spawning %s returned an invalid handle", name)
	}
	return reg, h
}
