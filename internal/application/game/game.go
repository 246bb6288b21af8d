// Package game provides the host loop that loads scenes and hands over
// between them.
package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tilehop/internal/application/scene"
	"github.com/younwookim/tilehop/internal/domain/level"
)

// Game implements ebiten.Game and manages Scene transitions.
//
// Scene loading runs on its own goroutine; Update polls for the result and
// keeps drawing the loading scene meanwhile. Everything else happens on the
// frame goroutine.
type Game struct {
	factory scene.Factory
	log     *log.Logger

	current scene.Scene
	key     string
	payload level.Payload // what current was started with, for reloads

	loading bool
	loadCh  chan error
	cancel  context.CancelFunc

	reload <-chan string

	screenW int
	screenH int
	dt      float64
}

// New creates a Game and starts loading the first scene.
func New(factory scene.Factory, first string, payload level.Payload, screenW, screenH int, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		factory: factory,
		log:     logger,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	if err := g.start(first, payload); err != nil {
		return nil, err
	}
	return g, nil
}

// WatchReload restarts the current scene whenever a path arrives on events.
func (g *Game) WatchReload(events <-chan string) {
	g.reload = events
}

// Update advances loading or the current scene and handles transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if err := g.pollReload(); err != nil {
		return err
	}

	if g.loading {
		select {
		case err := <-g.loadCh:
			g.loading = false
			if err != nil {
				return fmt.Errorf("load %s: %w", g.key, err)
			}
			g.current.OnActivate()
		default:
			return nil
		}
	}

	next, err := g.current.OnFrame(g.dt)
	if err != nil {
		return err
	}
	if next != nil {
		g.log.Info("scene transition", "from", g.key, "to", next.Key, "score", next.Payload.Score)
		g.current.OnExit()
		return g.start(next.Key, next.Payload)
	}
	return nil
}

func (g *Game) pollReload() error {
	if g.reload == nil {
		return nil
	}
	select {
	case path, ok := <-g.reload:
		if !ok {
			g.reload = nil
			return nil
		}
		g.log.Info("reloading scene", "scene", g.key, "changed", path)
		g.current.OnExit()
		return g.start(g.key, g.payload)
	default:
		return nil
	}
}

// start builds a scene and loads it in the background.
func (g *Game) start(key string, payload level.Payload) error {
	if g.cancel != nil {
		g.cancel()
	}
	next, err := g.factory(key, payload)
	if err != nil {
		return fmt.Errorf("create scene %s: %w", key, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	loadCh := make(chan error, 1)
	go func() {
		loadCh <- next.OnLoad(ctx)
	}()

	g.current = next
	g.key = key
	g.payload = payload
	g.loading = true
	g.loadCh = loadCh
	g.cancel = cancel
	g.log.Debug("loading scene", "scene", key)
	return nil
}

// awaitLoad blocks until the current scene has loaded and activates it.
func (g *Game) awaitLoad() error {
	if !g.loading {
		return nil
	}
	err := <-g.loadCh
	g.loading = false
	if err != nil {
		return fmt.Errorf("load %s: %w", g.key, err)
	}
	g.current.OnActivate()
	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Current returns the current scene and whether it is still loading.
func (g *Game) Current() (scene.Scene, bool) {
	return g.current, g.loading
}

// Close cancels any load in progress and exits the current scene.
func (g *Game) Close() {
	if g.cancel != nil {
		g.cancel()
	}
	if g.current != nil && !g.loading {
		g.current.OnExit()
	}
}
