package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/scenequery/internal/ai"
	"github.com/udisondev/scenequery/internal/config"
	"github.com/udisondev/scenequery/internal/debugdraw"
	"github.com/udisondev/scenequery/internal/model"
	"github.com/udisondev/scenequery/internal/scenequery"
)

const ConfigPath = "config/ringdemo.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cancel); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cancel context.CancelFunc) error {
	cfgPath := ConfigPath
	if p := os.Getenv("SCENEQUERY_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var screen tcell.Screen
	if cfg.Debug.Terminal {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initialising terminal screen: %w", err)
		}
		defer screen.Fini()
	}

	// Logs would scribble over the terminal view.
	logOut := os.Stdout
	if screen != nil {
		logOut = os.Stderr
	}
	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("ring demo starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"rings", cfg.SceneQuery.NumRings,
		"nodes_per_ring", cfg.SceneQuery.NodesPerRing)

	if cfg.Demo.Duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, cfg.Demo.Duration)
		defer stop()
	}

	var drawers debugdraw.Multi
	var hub *debugdraw.Hub
	if cfg.Debug.HTTPAddr != "" {
		hub = debugdraw.NewHub()
		defer hub.Close()
		drawers = append(drawers, hub)
	}

	var follower *followDrawer
	if screen != nil {
		follower = &followDrawer{term: debugdraw.NewTerminal(screen, 0)}
		drawers = append(drawers, follower)
	}

	var drawer scenequery.DebugDrawer = debugdraw.Nop{}
	if len(drawers) > 0 {
		drawer = drawers
	}

	d, err := newDemo(cfg, drawer)
	if err != nil {
		return fmt.Errorf("building demo: %w", err)
	}
	if follower != nil {
		follower.positions = d.registry
		follower.target = d.player
	}

	mgr := ai.NewTickManager(cfg.Demo.TickRate)
	d.register(mgr)
	defer mgr.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := mgr.Start(gctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})

	if hub != nil {
		r := mux.NewRouter()
		hub.Routes(r)
		srv := &http.Server{
			Addr:              cfg.Debug.HTTPAddr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("starting debug viewer", "addr", cfg.Debug.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("debug viewer: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if screen != nil {
		go pollQuit(screen, cancel)
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("demo error: %w", err)
	}

	slog.Info("ring demo stopped",
		"ticks", mgr.Ticks(),
		"regenerations", d.queryCtrl.Regenerations())
	return nil
}

// followDrawer keeps the terminal view centred on the context actor.
type followDrawer struct {
	term      *debugdraw.Terminal
	positions scenequery.PositionSource
	target    model.Handle
}

func (f *followDrawer) DrawMarkers(markers []model.Marker) {
	if f.positions != nil {
		if loc, ok := f.positions.Resolve(f.target); ok {
			f.term.Follow(loc)
		}
	}
	f.term.DrawMarkers(markers)
}

// pollQuit cancels on Esc, q or Ctrl-C. The screen swallows SIGINT in raw mode.
// Returns once the screen is finalised.
func pollQuit(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				slog.Info("shutting down", "key", ev.Name())
				cancel()
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
