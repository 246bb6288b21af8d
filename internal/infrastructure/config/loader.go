package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the game config file name inside the config directory.
const DefaultFile = "game.yaml"

// Loader loads game configuration from YAML files using fs.FS interface
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// FS exposes the underlying filesystem so maps and images resolve
// relative to the same root as the config.
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadGame loads game.yaml, fills defaults and validates the result.
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultFile, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DefaultFile, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", DefaultFile, err)
	}
	return cfg, nil
}

// Default returns the built-in tuning. Scenes are left empty.
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			Title:        "tilehop",
			ScreenWidth:  640,
			ScreenHeight: 480,
			Scale:        1,
			Framerate:    60,
			Zoom:         2,
		},
		Physics: PhysicsConfig{Gravity: 500, Iterations: 10},
		Player: PlayerConfig{
			Sprite:      "player",
			RunSpeed:    100,
			JumpSpeed:   200,
			FrameWidth:  40,
			FrameHeight: 45,
			Frame:       1,
			Hitbox:      HitboxConfig{OffsetX: 18, OffsetY: 5, Width: 22, Height: 40},
		},
		Pickup: PickupConfig{Group: "gems", Width: 16, Height: 16, Points: 1},
		Enemy:  EnemyConfig{Sprite: "skull", CycleMs: 1000, Width: 16, Height: 16},
		Exit:   ExitConfig{FirstTile: 2873, Columns: 4, Rows: 4, TilesetColumns: 88},
		HUD:    HUDConfig{X: 160, Y: 160, FontSize: 16},
		Layers: LayersConfig{
			Objects:    "objects",
			Platforms:  "Platforms",
			Exit:       "Exit",
			Background: []string{"Background1", "Background2"},
			Foreground: []string{"Foreground"},
		},
		Storage: StorageConfig{Database: "~/.tilehop/scores.db", AppName: "tilehop"},
	}
}

// applyDefaults restores zero values that YAML may have cleared explicitly.
func (c *GameConfig) applyDefaults() {
	d := Default()
	if c.Display.Zoom <= 0 {
		c.Display.Zoom = d.Display.Zoom
	}
	if c.Display.Scale <= 0 {
		c.Display.Scale = d.Display.Scale
	}
	if c.Physics.Iterations <= 0 {
		c.Physics.Iterations = d.Physics.Iterations
	}
	if c.Pickup.Points <= 0 {
		c.Pickup.Points = d.Pickup.Points
	}
	if c.Layers.Objects == "" {
		c.Layers.Objects = d.Layers.Objects
	}
	if c.Layers.Platforms == "" {
		c.Layers.Platforms = d.Layers.Platforms
	}
	if c.Layers.Exit == "" {
		c.Layers.Exit = d.Layers.Exit
	}
}

// Validate checks the scene graph and tuning values.
func (c *GameConfig) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d",
			c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Enemy.CycleMs <= 0 {
		errs = append(errs, fmt.Errorf("enemy.cycleMs must be positive, got %d", c.Enemy.CycleMs))
	}
	if len(c.Scenes) == 0 {
		errs = append(errs, errors.New("no scenes configured"))
	}

	keys := make(map[string]bool, len(c.Scenes))
	firsts := 0
	for i, s := range c.Scenes {
		if s.Key == "" {
			errs = append(errs, fmt.Errorf("scenes[%d]: key is required", i))
			continue
		}
		if keys[s.Key] {
			errs = append(errs, fmt.Errorf("scenes[%d]: duplicate key %q", i, s.Key))
		}
		keys[s.Key] = true
		if s.Map == "" {
			errs = append(errs, fmt.Errorf("scene %q: map is required", s.Key))
		}
		if s.First {
			firsts++
		}
		for j, a := range s.Assets {
			if a.Key == "" || a.Path == "" {
				errs = append(errs, fmt.Errorf("scene %q: assets[%d] needs key and path", s.Key, j))
			}
		}
	}
	for _, s := range c.Scenes {
		if s.Next != "" && !keys[s.Next] {
			errs = append(errs, fmt.Errorf("scene %q: next scene %q is not defined", s.Key, s.Next))
		}
	}
	if len(c.Scenes) > 0 && firsts != 1 {
		errs = append(errs, fmt.Errorf("exactly one scene must be first, got %d", firsts))
	}
	return errors.Join(errs...)
}

// Scene returns the scene with the given key.
func (c *GameConfig) Scene(key string) (SceneConfig, bool) {
	for _, s := range c.Scenes {
		if s.Key == key {
			return s, true
		}
	}
	return SceneConfig{}, false
}

// FirstScene returns the scene a new run starts at.
func (c *GameConfig) FirstScene() SceneConfig {
	for _, s := range c.Scenes {
		if s.First {
			return s
		}
	}
	return c.Scenes[0]
}

// ExitTiles returns the set of tile ids that complete a level.
func (c *GameConfig) ExitTiles() map[int]struct{} {
	set := make(map[int]struct{})
	if len(c.Exit.Tiles) > 0 {
		for _, id := range c.Exit.Tiles {
			set[id] = struct{}{}
		}
		return set
	}
	for row := 0; row < c.Exit.Rows; row++ {
		for col := 0; col < c.Exit.Columns; col++ {
			set[c.Exit.FirstTile+row*c.Exit.TilesetColumns+col] = struct{}{}
		}
	}
	return set
}

// SortedExitTiles returns ExitTiles in ascending order.
func (c *GameConfig) SortedExitTiles() []int {
	set := c.ExitTiles()
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// HitboxFor returns the player hitbox for a scene.
func (c *GameConfig) HitboxFor(s SceneConfig) HitboxConfig {
	if s.Hitbox != nil {
		return *s.Hitbox
	}
	return c.Player.Hitbox
}

// FrameFor returns the player frame size for a scene, taken from the scene's
// sprite sheet entry when it has one.
func (c *GameConfig) FrameFor(s SceneConfig) (int, int) {
	for _, a := range s.Assets {
		if a.Key == c.Player.Sprite && a.FrameWidth > 0 && a.FrameHeight > 0 {
			return a.FrameWidth, a.FrameHeight
		}
	}
	return c.Player.FrameWidth, c.Player.FrameHeight
}
