package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/scenequery/internal/ai"
	"github.com/udisondev/scenequery/internal/config"
	"github.com/udisondev/scenequery/internal/geo"
	"github.com/udisondev/scenequery/internal/model"
	"github.com/udisondev/scenequery/internal/occlusion"
	"github.com/udisondev/scenequery/internal/scenequery"
	"github.com/udisondev/scenequery/internal/world"
)

// demo is a player orbiting the arena centre with pursuers spreading
// around it on the scene query's free nodes.
type demo struct {
	registry *world.Registry
	grid     *geo.Grid
	scene    *occlusion.Scene
	query    *scenequery.Query

	player   model.Handle
	director model.Handle // ticks the scene query
	pursuers map[model.Handle]*ai.Pursuer

	queryCtrl *ai.QueryController
	orbiter   *ai.Orbiter
}

// newDemo builds the world, the collision scene and the scene query.
func newDemo(cfg config.Config, drawer scenequery.DebugDrawer) (*demo, error) {
	grid, err := geo.ParseLayout(cfg.World.Layout, cfg.World.GridOptions())
	if err != nil {
		return nil, fmt.Errorf("parsing world layout: %w", err)
	}

	d := &demo{
		registry: world.NewRegistry(),
		grid:     grid,
		pursuers: make(map[model.Handle]*ai.Pursuer, cfg.Demo.Pursuers),
	}
	d.scene = occlusion.NewScene(d.registry)

	if err := d.buildLevel(cfg.World); err != nil {
		return nil, err
	}

	center := d.arenaCenter()
	d.player = d.registry.Spawn("player", d.onFloor(center.Add(model.V3(0, cfg.Demo.OrbitRadius, 0))), model.InvalidHandle)
	if err := d.scene.AddPawn(d.player, cfg.Demo.PawnRadius, cfg.Demo.PawnHeight); err != nil {
		return nil, fmt.Errorf("adding player pawn: %w", err)
	}

	d.query = scenequery.New(cfg.SceneQuery.ToQueryConfig(), d.registry,
		scenequery.WithNavigation(grid),
		scenequery.WithOcclusion(d.scene),
		scenequery.WithDebugDrawer(drawer),
		scenequery.WithLogger(slog.Default().With("component", "scenequery")),
	)
	if !d.query.Setup(d.player) {
		return nil, fmt.Errorf("scene query disabled for player %d", d.player)
	}

	// Pursuers start on a wide circle so they have to walk in.
	spawnRadius := cfg.SceneQuery.OuterRadius + cfg.Demo.OrbitRadius
	for i := range cfg.Demo.Pursuers {
		a := 2 * math.Pi * float64(i) / float64(cfg.Demo.Pursuers)
		loc := d.onFloor(center.Add(model.V3(spawnRadius*math.Sin(a), spawnRadius*math.Cos(a), 0)))

		h := d.registry.Spawn(fmt.Sprintf("pursuer-%d", i), loc, model.InvalidHandle)
		if err := d.scene.AddPawn(h, cfg.Demo.PawnRadius, cfg.Demo.PawnHeight); err != nil {
			return nil, fmt.Errorf("adding pursuer pawn: %w", err)
		}
		d.pursuers[h] = ai.NewPursuer(h, d.registry, d.query, cfg.Demo.PursuerSpeed)
	}

	d.director = d.registry.Spawn("scene-query", center, d.player)
	d.queryCtrl = ai.NewQueryController(d.query)
	d.orbiter = ai.NewOrbiter(d.player, d.registry, center, cfg.Demo.OrbitRadius, cfg.Demo.OrbitSpeed)

	slog.Info("demo world built",
		"cells_walkable", grid.Walkable(),
		"shapes", d.scene.Len(),
		"actors", d.registry.Count(),
		"pursuers", len(d.pursuers))

	return d, nil
}

// buildLevel extrudes grid walls and adds crates to the collision scene.
func (d *demo) buildLevel(w config.World) error {
	level := d.registry.Spawn("level", model.V3(0, 0, 0), model.InvalidHandle)
	for _, wall := range d.grid.Walls() {
		if err := d.scene.AddBox(level, model.ChannelWorldStatic, wall.Min, wall.Max); err != nil {
			return fmt.Errorf("adding wall: %w", err)
		}
	}

	for i, c := range w.Crates {
		crate := d.registry.Spawn(fmt.Sprintf("crate-%d", i), c.Min.Model(), level)
		if err := d.scene.AddBox(crate, model.ChannelDestructible, c.Min.Model(), c.Max.Model()); err != nil {
			return fmt.Errorf("adding crate %d: %w", i, err)
		}
	}
	return nil
}

// arenaCenter returns the centre of the grid at floor height.
func (d *demo) arenaCenter() model.Vec3 {
	w, h := d.grid.Size()
	return d.onFloor(d.grid.CellCenter(w/2, h/2))
}

func (d *demo) onFloor(loc model.Vec3) model.Vec3 {
	return loc.WithZ(d.grid.GetHeight(loc.X, loc.Y, loc.Z))
}

// register hands every controller to the tick manager.
func (d *demo) register(mgr *ai.TickManager) {
	mgr.Register(d.player, d.orbiter)
	mgr.Register(d.director, d.queryCtrl)
	for h, p := range d.pursuers {
		mgr.Register(h, p)
	}
}
