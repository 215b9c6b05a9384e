package scenequery

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/udisondev/scenequery/internal/model"
)

// ErrInvalidRadii is reported when the inner radius is not strictly smaller
// than the outer radius. A query configured this way stays disabled.
var ErrInvalidRadii = errors.New("inner radius must be less than outer radius")

// maxNodes bounds rings*nodesPerRing so every id fits into int16.
const maxNodes = math.MaxInt16 + 1

// Config holds scene query tuning. It is read on Setup and must not change
// while a query is bound.
type Config struct {
	// Number of rings between the inner and outer radius.
	NumRings int
	// Nodes generated on every ring. Cost grows with NumRings*NodesPerRing.
	NodesPerRing int

	// Closest ring distance to the context actor.
	InnerRadius float64
	// Farthest ring distance to the context actor.
	OuterRadius float64

	// How often the node list may be regenerated.
	RegenerateInterval time.Duration
	// Context movement below this distance keeps the previous node list.
	LastLocationTolerance float64

	// Vertical offset applied to a node before tracing towards the context actor.
	LineOfSightHeightOffset float64
	// Radius of the sweep sphere; plain rays are too precise.
	SphereTraceRadius float64
	// Half extents of the navigation projection search box.
	ProjectionExtent model.Vec3
	// Parallel sweeps per regeneration; <= 1 sweeps sequentially.
	LineOfSightWorkers int

	EnableDebugDrawing      bool
	EnableProjectToNav      bool
	EnableLineOfSightChecks bool
}

// DefaultConfig returns the stock tuning: three rings of sixteen nodes
// between 8m and 12m, regenerated at most every 300ms.
func DefaultConfig() Config {
	return Config{
		NumRings:                3,
		NodesPerRing:            16,
		InnerRadius:             800,
		OuterRadius:             1200,
		RegenerateInterval:      300 * time.Millisecond,
		LastLocationTolerance:   10,
		LineOfSightHeightOffset: 100,
		SphereTraceRadius:       20,
		ProjectionExtent:        model.V3(16, 16, 512),
		LineOfSightWorkers:      1,
		EnableDebugDrawing:      true,
		EnableProjectToNav:      true,
		EnableLineOfSightChecks: true,
	}
}

// NodeCount returns the number of nodes a regeneration produces before filtering.
func (c Config) NodeCount() int {
	return c.NumRings * c.NodesPerRing
}

// Validate returns every violated constraint joined into one error.
// Radius ordering violations wrap ErrInvalidRadii.
func (c Config) Validate() error {
	var errs []error

	if c.NumRings < 1 {
		errs = append(errs, fmt.Errorf("num rings %d: must be at least 1", c.NumRings))
	}
	if c.NodesPerRing < 1 {
		errs = append(errs, fmt.Errorf("nodes per ring %d: must be at least 1", c.NodesPerRing))
	}
	if c.NumRings >= 1 && c.NodesPerRing >= 1 && c.NodeCount() > maxNodes {
		errs = append(errs, fmt.Errorf("node count %d exceeds %d", c.NodeCount(), maxNodes))
	}
	if c.InnerRadius >= c.OuterRadius {
		errs = append(errs, fmt.Errorf("inner %.1f, outer %.1f: %w", c.InnerRadius, c.OuterRadius, ErrInvalidRadii))
	}
	if c.RegenerateInterval < 0 {
		errs = append(errs, fmt.Errorf("regenerate interval %s: must not be negative", c.RegenerateInterval))
	}
	if c.LastLocationTolerance < 0 {
		errs = append(errs, fmt.Errorf("location tolerance %.1f: must not be negative", c.LastLocationTolerance))
	}
	if c.SphereTraceRadius < 0 {
		errs = append(errs, fmt.Errorf("sphere trace radius %.1f: must not be negative", c.SphereTraceRadius))
	}

	return errors.Join(errs...)
}
