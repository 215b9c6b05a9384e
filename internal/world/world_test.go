package world

import (
	"errors"
	"sync"
	"testing"

	"github.com/udisondev/scenequery/internal/model"
)

func TestRegistry_SpawnResolve(t *testing.T) {
	r := NewRegistry()

	h := r.Spawn("player", model.V3(1, 2, 3), model.InvalidHandle)
	if !h.IsValid() {
		t.Fatal("Spawn() returned invalid handle")
	}

	loc, ok := r.Resolve(h)
	if !ok {
		t.Fatal("Resolve() = false, want true")
	}
	if loc != model.V3(1, 2, 3) {
		t.Errorf("Resolve() = %+v, want (1,2,3)", loc)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
}

func TestRegistry_DespawnedHandleNeverResolves(t *testing.T) {
	r := NewRegistry()

	h := r.Spawn("pawn", model.V3(0, 0, 0), model.InvalidHandle)
	r.Despawn(h)

	if _, ok := r.Resolve(h); ok {
		t.Error("Resolve() after Despawn = true, want false")
	}

	// A new actor must not inherit the stale handle.
	h2 := r.Spawn("pawn", model.V3(0, 0, 0), model.InvalidHandle)
	if h2 == h {
		t.Errorf("handle %d reused", h)
	}
	if _, ok := r.Resolve(h); ok {
		t.Error("stale handle resolves after respawn")
	}

	// Despawning twice is harmless.
	r.Despawn(h)
}

func TestRegistry_SetLocation(t *testing.T) {
	r := NewRegistry()
	h := r.Spawn("player", model.V3(0, 0, 0), model.InvalidHandle)

	if err := r.SetLocation(h, model.V3(5, 6, 7)); err != nil {
		t.Fatalf("SetLocation() error = %v", err)
	}
	a, ok := r.Get(h)
	if !ok || a.Location != model.V3(5, 6, 7) {
		t.Errorf("Get() = %+v, %v", a, ok)
	}

	err := r.SetLocation(model.Handle(12345), model.V3(0, 0, 0))
	if !errors.Is(err, ErrUnknownActor) {
		t.Errorf("SetLocation(unknown) error = %v, want ErrUnknownActor", err)
	}
}

func TestRegistry_Owners(t *testing.T) {
	r := NewRegistry()
	player := r.Spawn("player", model.V3(0, 0, 0), model.InvalidHandle)
	shield := r.Spawn("shield", model.V3(0, 0, 0), player)
	drone := r.Spawn("drone", model.V3(0, 0, 0), shield)
	stranger := r.Spawn("stranger", model.V3(0, 0, 0), model.InvalidHandle)

	owners := r.Owners(drone)
	if len(owners) != 2 || owners[0] != shield || owners[1] != player {
		t.Errorf("Owners(drone) = %v, want [shield player]", owners)
	}

	tests := []struct {
		name  string
		h     model.Handle
		owner model.Handle
		want  bool
	}{
		{"self", player, player, true},
		{"direct", shield, player, true},
		{"transitive", drone, player, true},
		{"reverse", player, drone, false},
		{"unrelated", stranger, player, false},
		{"invalid self", model.InvalidHandle, model.InvalidHandle, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsOwnedBy(tt.h, tt.owner); got != tt.want {
				t.Errorf("IsOwnedBy() = %v, want %v", got, tt.want)
			}
		})
	}

	// Chain stops at a despawned owner.
	r.Despawn(shield)
	if got := r.Owners(drone); len(got) != 1 || got[0] != shield {
		t.Errorf("Owners(drone) after despawn = %v, want [shield]", got)
	}
}

func TestRegistry_OwnerCycle(t *testing.T) {
	r := NewRegistry()
	a := r.Spawn("a", model.V3(0, 0, 0), model.InvalidHandle)
	b := r.Spawn("b", model.V3(0, 0, 0), a)

	// Force a cycle a -> b -> a.
	r.mu.Lock()
	r.actors[a].Owner = b
	r.mu.Unlock()

	owners := r.Owners(a)
	if len(owners) != 1 || owners[0] != b {
		t.Errorf("Owners(a) = %v, want [b]", owners)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	h := r.Spawn("player", model.V3(0, 0, 0), model.InvalidHandle)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = r.SetLocation(h, model.V3(float64(i), 0, 0))
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				_, _ = r.Resolve(h)
				_ = r.Spawn("temp", model.V3(0, 0, 0), h)
			}
		}()
	}
	wg.Wait()

	if r.Count() != 1+8*100 {
		t.Errorf("Count() = %d, want %d", r.Count(), 1+8*100)
	}
}

func TestHandleGenerator_Unique(t *testing.T) {
	gen := NewHandleGenerator()
	seen := make(map[model.Handle]struct{})
	for range 1000 {
		h := gen.Next()
		if _, dup := seen[h]; dup {
			t.Fatalf("duplicate handle %d", h)
		}
		seen[h] = struct{}{}
	}
}
