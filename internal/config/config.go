package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/scenequery/internal/geo"
	"github.com/udisondev/scenequery/internal/model"
	"github.com/udisondev/scenequery/internal/scenequery"
)

// Config holds everything the ring demo needs.
type Config struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	SceneQuery SceneQuery `yaml:"scene_query"`
	Demo       Demo       `yaml:"demo"`
	World      World      `yaml:"world"`
	Debug      Debug      `yaml:"debug"`
}

// Vec is a YAML friendly vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Model converts v to a model.Vec3.
func (v Vec) Model() model.Vec3 {
	return model.V3(v.X, v.Y, v.Z)
}

// SceneQuery mirrors scenequery.Config.
type SceneQuery struct {
	NumRings     int `yaml:"num_rings"`
	NodesPerRing int `yaml:"nodes_per_ring"`

	InnerRadius float64 `yaml:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius"`

	RegenerateInterval    time.Duration `yaml:"regenerate_interval"`
	LastLocationTolerance float64       `yaml:"last_location_tolerance"`

	LineOfSightHeightOffset float64 `yaml:"line_of_sight_height_offset"`
	SphereTraceRadius       float64 `yaml:"sphere_trace_radius"`
	ProjectionExtent        Vec     `yaml:"projection_extent"`
	LineOfSightWorkers      int     `yaml:"line_of_sight_workers"`

	EnableDebugDrawing      bool `yaml:"enable_debug_drawing"`
	EnableProjectToNav      bool `yaml:"enable_project_to_nav"`
	EnableLineOfSightChecks bool `yaml:"enable_line_of_sight_checks"`
}

// ToQueryConfig converts to the scene query's own config type.
func (s SceneQuery) ToQueryConfig() scenequery.Config {
	return scenequery.Config{
		NumRings:                s.NumRings,
		NodesPerRing:            s.NodesPerRing,
		InnerRadius:             s.InnerRadius,
		OuterRadius:             s.OuterRadius,
		RegenerateInterval:      s.RegenerateInterval,
		LastLocationTolerance:   s.LastLocationTolerance,
		LineOfSightHeightOffset: s.LineOfSightHeightOffset,
		SphereTraceRadius:       s.SphereTraceRadius,
		ProjectionExtent:        s.ProjectionExtent.Model(),
		LineOfSightWorkers:      s.LineOfSightWorkers,
		EnableDebugDrawing:      s.EnableDebugDrawing,
		EnableProjectToNav:      s.EnableProjectToNav,
		EnableLineOfSightChecks: s.EnableLineOfSightChecks,
	}
}

// Demo tunes the simulated actors.
type Demo struct {
	TickRate     time.Duration `yaml:"tick_rate"`
	Duration     time.Duration `yaml:"duration"` // 0 runs until interrupted
	Pursuers     int           `yaml:"pursuers"`
	PursuerSpeed float64       `yaml:"pursuer_speed"` // units per second
	OrbitRadius  float64       `yaml:"orbit_radius"`
	OrbitSpeed   float64       `yaml:"orbit_speed"` // radians per second
	PawnRadius   float64       `yaml:"pawn_radius"`
	PawnHeight   float64       `yaml:"pawn_height"`
}

// Crate is a destructible box in the demo world.
type Crate struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// World describes the navigation grid and extra geometry.
type World struct {
	OriginX     float64  `yaml:"origin_x"`
	OriginY     float64  `yaml:"origin_y"`
	CellSize    float64  `yaml:"cell_size"`
	LevelHeight float64  `yaml:"level_height"`
	WallHeight  float64  `yaml:"wall_height"`
	Layout      []string `yaml:"layout"`
	Crates      []Crate  `yaml:"crates"`
}

// GridOptions converts to geo layout options.
func (w World) GridOptions() geo.Options {
	return geo.Options{
		OriginX:     w.OriginX,
		OriginY:     w.OriginY,
		CellSize:    w.CellSize,
		LevelHeight: w.LevelHeight,
		WallHeight:  w.WallHeight,
	}
}

// Debug configures visualization sinks.
type Debug struct {
	HTTPAddr string `yaml:"http_addr"` // empty disables the websocket viewer
	Terminal bool   `yaml:"terminal"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	sq := scenequery.DefaultConfig()
	return Config{
		LogLevel: "info",
		SceneQuery: SceneQuery{
			NumRings:                sq.NumRings,
			NodesPerRing:            sq.NodesPerRing,
			InnerRadius:             sq.InnerRadius,
			OuterRadius:             sq.OuterRadius,
			RegenerateInterval:      sq.RegenerateInterval,
			LastLocationTolerance:   sq.LastLocationTolerance,
			LineOfSightHeightOffset: sq.LineOfSightHeightOffset,
			SphereTraceRadius:       sq.SphereTraceRadius,
			ProjectionExtent:        Vec{X: sq.ProjectionExtent.X, Y: sq.ProjectionExtent.Y, Z: sq.ProjectionExtent.Z},
			LineOfSightWorkers:      4,
			EnableDebugDrawing:      sq.EnableDebugDrawing,
			EnableProjectToNav:      sq.EnableProjectToNav,
			EnableLineOfSightChecks: sq.EnableLineOfSightChecks,
		},
		Demo: Demo{
			TickRate:     33 * time.Millisecond,
			Pursuers:     6,
			PursuerSpeed: 450,
			OrbitRadius:  600,
			OrbitSpeed:   0.4,
			PawnRadius:   42,
			PawnHeight:   180,
		},
		World: World{
			OriginX:     -2000,
			OriginY:     -2000,
			CellSize:    geo.DefaultCellSize,
			LevelHeight: geo.DefaultLevelHeight,
			WallHeight:  geo.DefaultWallHeight,
			Layout:      defaultLayout(),
			Crates: []Crate{
				{Min: Vec{X: 300, Y: -700, Z: 0}, Max: Vec{X: 420, Y: -580, Z: 120}},
			},
		},
		Debug: Debug{
			HTTPAddr: "127.0.0.1:8089",
		},
	}
}

// defaultLayout is a 40x40 arena with a few walls and a raised platform.
func defaultLayout() []string {
	rows := make([]string, 40)
	for i := range rows {
		row := make([]byte, 40)
		for j := range row {
			switch {
			case i == 0 || i == 39 || j == 0 || j == 39:
				row[j] = '#'
			case i == 14 && j >= 8 && j <= 16:
				row[j] = '#'
			case j == 28 && i >= 22 && i <= 30:
				row[j] = '#'
			case i >= 24 && i <= 28 && j >= 10 && j <= 14:
				row[j] = '2'
			default:
				row[j] = '.'
			}
		}
		rows[i] = string(row)
	}
	return rows
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := validateDocument(data); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
