package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/scenequery/internal/model"
)

// DefaultTickInterval is used when NewTickManager gets a non-positive interval.
const DefaultTickInterval = 33 * time.Millisecond

// TickManager drives every registered controller from a single goroutine.
// Controllers are ticked sequentially so they may share a scene query.
type TickManager struct {
	controllers     sync.Map // map[model.Handle]Controller
	interval        time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
	controllerCount atomic.Int32
	ticks           atomic.Uint64
}

// NewTickManager creates a tick manager firing every interval.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Register registers and starts a controller for an actor.
// A controller already registered for the handle is stopped and replaced.
func (m *TickManager) Register(h model.Handle, controller Controller) {
	if prev, loaded := m.controllers.Swap(h, controller); loaded {
		prev.(Controller).Stop()
	} else {
		m.controllerCount.Add(1)
	}
	controller.Start()

	slog.Debug("controller registered",
		"handle", h,
		"intention", controller.CurrentIntention())
}

// Unregister stops and removes the controller of an actor.
func (m *TickManager) Unregister(h model.Handle) {
	value, ok := m.controllers.LoadAndDelete(h)
	if !ok {
		return
	}

	m.controllerCount.Add(-1)
	value.(Controller).Stop()

	slog.Debug("controller unregistered", "handle", h)
}

// Start runs the tick loop. Blocks until ctx is canceled or Stop is called.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped")
			return nil

		case now := <-ticker.C:
			dt := now.Sub(last)
			if dt <= 0 {
				dt = m.interval
			}
			last = now
			m.tickAll(dt)
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// StopAll stops and removes every controller. Call it once the loop returned.
func (m *TickManager) StopAll() {
	m.controllers.Range(func(key, _ any) bool {
		m.Unregister(key.(model.Handle))
		return true
	})
}

func (m *TickManager) tickAll(dt time.Duration) {
	count := 0

	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick(dt)
		count++
		return true
	})

	n := m.ticks.Add(1)
	if count > 0 && IsDebugEnabled() {
		slog.Debug("tick completed", "tick", n, "controllers", count, "dt", dt)
	}
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Ticks returns how many ticks ran so far.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}

// GetController returns the controller of an actor.
func (m *TickManager) GetController(h model.Handle) (Controller, error) {
	value, ok := m.controllers.Load(h)
	if !ok {
		return nil, fmt.Errorf("controller not found for handle %d", h)
	}
	return value.(Controller), nil
}
