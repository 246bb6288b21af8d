// Package level provides the scene that runs one Tiled level.
//
// Every level is the same Controller type; a SceneConfig decides which map it
// loads, which assets it needs and which scene follows it.
package level

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/tilehop/internal/application/scene"
	"github.com/younwookim/tilehop/internal/application/state"
	"github.com/younwookim/tilehop/internal/application/system"
	levelstate "github.com/younwookim/tilehop/internal/domain/level"
	"github.com/younwookim/tilehop/internal/domain/tiled"
	"github.com/younwookim/tilehop/internal/infrastructure/assets"
	"github.com/younwookim/tilehop/internal/infrastructure/config"
	"github.com/younwookim/tilehop/internal/infrastructure/progress"
)

// MapLoader reads a map by path.
type MapLoader interface {
	Load(path string) (*tiled.Map, error)
}

// RunRecorder stores the score of a cleared run.
type RunRecorder interface {
	SaveRun(finalScene string, score int) (int64, error)
}

// Checkpointer remembers the last level a run reached.
type Checkpointer interface {
	Save(cp progress.Checkpoint) error
	Clear() error
}

// Config selects the level and what it was started with.
type Config struct {
	Game    *config.GameConfig
	Scene   config.SceneConfig
	Payload levelstate.Payload
}

// Deps are the collaborators shared by every level. Scores, Progress and
// HUDFace may be nil.
type Deps struct {
	Maps     MapLoader
	Assets   fs.FS
	Input    system.InputSource
	Logger   *log.Logger
	HUDFace  *text.GoTextFace
	Scores   RunRecorder
	Progress Checkpointer
}

// Controller is the scene for one level.
type Controller struct {
	cfg  Config
	deps Deps
	log  *log.Logger

	state state.SceneState

	// Set by OnLoad, read after OnActivate.
	tilemap  *tiled.Map
	registry *assets.Registry

	level   *levelstate.State
	input   *system.InputSystem
	physics *system.PhysicsSystem
	pickups *system.PickupSystem
	trigger *system.ExitTrigger
	camera  *system.Camera
	frames  int
}

// New creates a level scene in the Loading state.
func New(cfg Config, deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		cfg:   cfg,
		deps:  deps,
		log:   logger.With("scene", cfg.Scene.Key),
		state: state.StateLoading,
	}
}

// Key returns the scene key.
func (c *Controller) Key() string { return c.cfg.Scene.Key }

// State returns the lifecycle state.
func (c *Controller) State() state.SceneState { return c.state }

// Level returns the live level state, nil before activation.
func (c *Controller) Level() *levelstate.State { return c.level }

// Frames returns the number of simulated frames.
func (c *Controller) Frames() int { return c.frames }

// OnLoad reads the map and decodes the scene's images.
func (c *Controller) OnLoad(ctx context.Context) error {
	m, err := c.deps.Maps.Load(c.cfg.Scene.Map)
	if err != nil {
		return fmt.Errorf("scene %s: %w", c.cfg.Scene.Key, err)
	}
	reg, err := assets.Load(ctx, c.deps.Assets, c.cfg.Scene.Assets)
	if err != nil {
		return fmt.Errorf("scene %s: %w", c.cfg.Scene.Key, err)
	}
	c.tilemap = m
	c.registry = reg
	return nil
}

// OnActivate builds the level from the loaded map and starts simulation.
func (c *Controller) OnActivate() {
	if c.state != state.StateLoading || c.tilemap == nil {
		return
	}
	game := c.cfg.Game
	m := c.tilemap

	score := levelstate.InitialScore(c.cfg.Scene.First, c.cfg.Payload)
	st := levelstate.NewState(m, score)
	st.Exit = m.TileLayer(game.Layers.Exit)

	c.camera = system.NewCamera(game.Display.ScreenWidth, game.Display.ScreenHeight, game.Display.Zoom, st.CameraBounds)
	c.trigger = system.NewExitTrigger(game.ExitTiles())

	objects := m.ObjectLayer(game.Layers.Objects)
	if objects == nil {
		c.log.Warn("map has no object layer, level is static", "layer", game.Layers.Objects, "map", c.cfg.Scene.Map)
	} else {
		st.Interactive = true
		system.NewDefaultSpawner(game, c.cfg.Scene).Spawn(st, objects)

		c.input = system.NewInputSystem(game.Player)
		c.pickups = system.NewPickupSystem(game.Pickup.Points)
		c.physics = system.NewPhysicsSystem(game.Physics, m.TileLayer(game.Layers.Platforms),
			float64(m.WidthInPixels()), float64(m.HeightInPixels()))
		if st.Player != nil {
			c.physics.AttachPlayer(st.Player)
			c.camera.Follow(st.Player.Position())
		} else {
			c.log.Warn("map has no player spawn")
		}
	}
	if st.Exit == nil {
		c.log.Debug("map has no exit layer", "layer", game.Layers.Exit)
	}

	c.level = st
	c.state = state.StateActive

	if c.deps.Progress != nil {
		cp := progress.Checkpoint{Scene: c.cfg.Scene.Key, Score: st.Score}
		if err := c.deps.Progress.Save(cp); err != nil {
			c.log.Warn("failed to save checkpoint", "err", err)
		}
	}

	c.log.Info("level active",
		"score", st.Score,
		"pickups", len(st.Pickups),
		"enemies", len(st.Enemies),
		"interactive", st.Interactive,
	)
}

// OnFrame runs one frame: input, movement, pickups, exit trigger.
// It returns a transition at most once per scene.
func (c *Controller) OnFrame(dt float64) (*scene.Transition, error) {
	switch c.state {
	case state.StateActive:
		return c.updateActive(dt), nil
	case state.StatePaused:
		if c.poll().Pause {
			c.state = state.StateActive
			c.log.Debug("resumed")
		}
	case state.StateCleared:
		if c.poll().Confirm {
			return c.restart(), nil
		}
	}
	return nil, nil
}

func (c *Controller) updateActive(dt float64) *scene.Transition {
	in := c.poll()
	if in.Pause {
		c.state = state.StatePaused
		c.log.Debug("paused")
		return nil
	}

	st := c.level
	c.frames++
	if !st.Interactive {
		return nil
	}

	c.input.UpdatePlayer(st.Player, in)
	c.physics.Update(dt)
	system.UpdatePatrols(st, dt)

	if n := c.pickups.Update(st); n > 0 {
		c.log.Debug("pickup collected", "score", st.Score, "remaining", st.ActivePickups())
	}

	if st.Player != nil {
		c.camera.Follow(st.Player.Position())
	}

	if c.trigger.Evaluate(st) {
		return c.complete()
	}
	return nil
}

// complete ends the level. A level with a successor hands its payload over;
// the final level records the run and waits for a restart.
func (c *Controller) complete() *scene.Transition {
	st := c.level
	if c.cfg.Scene.Final() {
		c.state = state.StateCleared
		c.log.Info("run cleared", "score", st.Score)
		if c.deps.Scores != nil {
			if _, err := c.deps.Scores.SaveRun(c.cfg.Scene.Key, st.Score); err != nil {
				c.log.Warn("failed to record run", "err", err)
			}
		}
		if c.deps.Progress != nil {
			if err := c.deps.Progress.Clear(); err != nil {
				c.log.Warn("failed to clear checkpoint", "err", err)
			}
		}
		return nil
	}

	c.state = state.StateTransitioning
	c.log.Info("level complete", "next", c.cfg.Scene.Next, "score", st.Score)
	return &scene.Transition{Key: c.cfg.Scene.Next, Payload: st.Payload()}
}

func (c *Controller) restart() *scene.Transition {
	c.state = state.StateTransitioning
	first := c.cfg.Game.FirstScene()
	c.log.Info("restarting run", "next", first.Key)
	return &scene.Transition{Key: first.Key}
}

func (c *Controller) poll() system.InputState {
	if c.deps.Input == nil {
		return system.InputState{}
	}
	return c.deps.Input.Poll()
}

// OnExit releases the physics world.
func (c *Controller) OnExit() {
	if c.physics != nil {
		c.physics.DetachPlayer()
	}
	c.log.Debug("scene exit", "state", c.state, "frames", c.frames)
}

var _ scene.Scene = (*Controller)(nil)
