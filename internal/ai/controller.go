package ai

import (
	"time"

	"github.com/udisondev/scenequery/internal/model"
)

// Intention is what a controller is currently doing.
type Intention int32

const (
	IntentionIdle Intention = iota
	IntentionActive
	IntentionMove
	IntentionHold
)

func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionActive:
		return "ACTIVE"
	case IntentionMove:
		return "MOVE"
	case IntentionHold:
		return "HOLD"
	default:
		return "UNKNOWN"
	}
}

// Controller is driven by the TickManager.
type Controller interface {
	// Start starts the controller
	Start()

	// Stop stops the controller and releases anything it holds
	Stop()

	// CurrentIntention returns current intention
	CurrentIntention() Intention

	// Tick advances the controller by dt
	Tick(dt time.Duration)
}

// Mover moves actors around the world.
type Mover interface {
	Resolve(h model.Handle) (model.Vec3, bool)
	SetLocation(h model.Handle, loc model.Vec3) error
}
