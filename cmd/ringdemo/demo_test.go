package main

import (
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/scenequery/internal/ai"
	"github.com/udisondev/scenequery/internal/config"
	"github.com/udisondev/scenequery/internal/model"
	"github.com/udisondev/scenequery/internal/scenequery"
)

type recordingDrawer struct {
	mu     sync.Mutex
	frames [][]model.Marker
}

func (r *recordingDrawer) DrawMarkers(markers []model.Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, append([]model.Marker(nil), markers...))
}

func (r *recordingDrawer) last() []model.Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// testLayout is a 20x20 floor with origin (-1000,-1000) and 1m cells.
// The player stands at (50, 50). One wall cell covers x 200..300, y 0..100
// east of the player; the cell under the southern node has no data.
func testLayout() []string {
	rows := make([]string, 20)
	for r := range rows {
		row := []byte(strings.Repeat(".", 20))
		switch r {
		case 9: // cy 10
			row[12] = '#'
		case 12: // cy 7
			row[10] = ' '
		}
		rows[r] = string(row)
	}
	return rows
}

func testConfig(pursuers int) config.Config {
	cfg := config.Default()
	cfg.World = config.World{
		OriginX:     -1000,
		OriginY:     -1000,
		CellSize:    100,
		LevelHeight: 40,
		WallHeight:  300,
		Layout:      testLayout(),
	}

	cfg.SceneQuery.NumRings = 1
	cfg.SceneQuery.NodesPerRing = 4
	cfg.SceneQuery.InnerRadius = 300
	cfg.SceneQuery.OuterRadius = 400
	cfg.SceneQuery.LineOfSightWorkers = 2

	cfg.Demo.OrbitRadius = 0
	cfg.Demo.Pursuers = pursuers
	cfg.Demo.PursuerSpeed = 100
	return cfg
}

func nodeIDs(nodes []scenequery.Node) []int16 {
	ids := make([]int16, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestDemo_QueryFiltersAgainstWorld(t *testing.T) {
	drawer := &recordingDrawer{}
	d, err := newDemo(testConfig(0), drawer)
	require.NoError(t, err)

	loc, ok := d.registry.Resolve(d.player)
	require.True(t, ok)
	assert.Equal(t, model.V3(50, 50, 0), loc)

	d.queryCtrl.Start()
	d.queryCtrl.Tick(0)
	require.Equal(t, scenequery.OutcomeRegenerated, d.queryCtrl.LastOutcome())

	nodes := d.query.Nodes()
	assert.Equal(t, []int16{0, 1, 3}, nodeIDs(nodes), "southern node has no navigation")

	visible := map[int16]bool{}
	for _, n := range nodes {
		visible[n.ID] = n.CanSeeContext
		assert.InDelta(t, 0, n.Location.Z, 1e-9, "projected onto the floor")
	}
	assert.True(t, visible[0], "the player's own pawn does not block")
	assert.False(t, visible[1], "wall between node and player")
	assert.True(t, visible[3])
}

func TestDemo_PursuersSpreadOverVisibleNodes(t *testing.T) {
	drawer := &recordingDrawer{}
	d, err := newDemo(testConfig(2), drawer)
	require.NoError(t, err)
	require.Len(t, d.pursuers, 2)

	d.queryCtrl.Start()
	d.queryCtrl.Tick(0)

	claimed := map[int16]bool{}
	for _, p := range d.pursuers {
		p.Start()
		p.Tick(10 * time.Millisecond)
		claimed[p.ClaimedNode()] = true
	}

	assert.Equal(t, map[int16]bool{0: true, 3: true}, claimed)
	assert.Zero(t, d.query.FreeCount())

	// Next tick draws the list: claimed nodes yellow, blocked node red.
	d.queryCtrl.Tick(10 * time.Millisecond)
	markers := drawer.last()
	require.Len(t, markers, 3)
	assert.Equal(t, model.ColorYellow, markers[0].Color)
	assert.Equal(t, model.ColorRed, markers[1].Color)
	assert.Equal(t, model.ColorYellow, markers[2].Color)

	for _, p := range d.pursuers {
		assert.Equal(t, ai.IntentionMove, p.CurrentIntention())
		p.Stop()
	}
	assert.Equal(t, 2, d.query.FreeCount())
}

func TestDemo_ArrivedPursuerKeepsNode(t *testing.T) {
	d, err := newDemo(testConfig(1), nil)
	require.NoError(t, err)

	var p *ai.Pursuer
	for _, only := range d.pursuers {
		p = only
	}
	require.NotNil(t, p)

	d.queryCtrl.Start()
	d.queryCtrl.Tick(0)
	p.Start()

	// Spawned 100 north of node 0 with speed 100: one second to arrive.
	p.Tick(time.Second)
	require.Equal(t, ai.IntentionHold, p.CurrentIntention())
	require.Equal(t, int16(0), p.ClaimedNode())

	// Move the player past the tolerance so the list regenerates with the
	// pursuer standing on node 0.
	require.NoError(t, d.registry.SetLocation(d.player, model.V3(65, 50, 0)))
	d.queryCtrl.Tick(time.Second)
	require.Equal(t, scenequery.OutcomeRegenerated, d.queryCtrl.LastOutcome())

	node, ok := d.query.NodeByID(0)
	require.True(t, ok)
	assert.True(t, node.CanSeeContext, "the pursuer's own pawn does not block its node")

	p.Tick(time.Second)
	assert.Equal(t, int16(0), p.ClaimedNode())
	assert.Equal(t, ai.IntentionHold, p.CurrentIntention())
}

func TestDemo_RegisterControllers(t *testing.T) {
	d, err := newDemo(testConfig(3), scenequery.DebugDrawer(nil))
	require.NoError(t, err)

	mgr := ai.NewTickManager(time.Millisecond)
	d.register(mgr)
	assert.Equal(t, 5, mgr.Count(), "orbiter, query and three pursuers")

	mgr.StopAll()
	assert.Zero(t, mgr.Count())
}

func TestDemo_BadLayout(t *testing.T) {
	cfg := testConfig(0)
	cfg.World.Layout = []string{"..x"}
	_, err := newDemo(cfg, nil)
	require.Error(t, err)
}

func TestDemo_InvalidQueryConfig(t *testing.T) {
	cfg := testConfig(0)
	cfg.SceneQuery.InnerRadius = cfg.SceneQuery.OuterRadius
	_, err := newDemo(cfg, nil)
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}
