package config

import "time"

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display DisplayConfig `yaml:"display"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Pickup  PickupConfig  `yaml:"pickup"`
	Enemy   EnemyConfig   `yaml:"enemy"`
	Exit    ExitConfig    `yaml:"exit"`
	HUD     HUDConfig     `yaml:"hud"`
	Layers  LayersConfig  `yaml:"layers"`
	Storage StorageConfig `yaml:"storage"`
	Scenes  []SceneConfig `yaml:"scenes"`
}

type DisplayConfig struct {
	Title        string  `yaml:"title"`
	ScreenWidth  int     `yaml:"screenWidth"`
	ScreenHeight int     `yaml:"screenHeight"`
	Scale        int     `yaml:"scale"`
	Framerate    int     `yaml:"framerate"`
	Zoom         float64 `yaml:"zoom"` // camera zoom applied to the world, not the HUD
}

type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
}

type PlayerConfig struct {
	Sprite      string       `yaml:"sprite"`
	RunSpeed    float64      `yaml:"runSpeed"`
	JumpSpeed   float64      `yaml:"jumpSpeed"`
	FrameWidth  int          `yaml:"frameWidth"`
	FrameHeight int          `yaml:"frameHeight"`
	Frame       int          `yaml:"frame"`
	Hitbox      HitboxConfig `yaml:"hitbox"`
}

// HitboxConfig places the collision body inside the sprite frame.
type HitboxConfig struct {
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

type PickupConfig struct {
	Group  string  `yaml:"group"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Points int     `yaml:"points"`
}

type EnemyConfig struct {
	Sprite  string  `yaml:"sprite"`
	CycleMs int     `yaml:"cycleMs"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// Cycle returns the full there-and-back duration of a patrol.
func (c EnemyConfig) Cycle() time.Duration {
	return time.Duration(c.CycleMs) * time.Millisecond
}

// ExitConfig describes which tile ids of the exit layer end a level.
// Tiles, when set, replaces the generated block.
type ExitConfig struct {
	FirstTile      int   `yaml:"firstTile"`
	Columns        int   `yaml:"columns"`
	Rows           int   `yaml:"rows"`
	TilesetColumns int   `yaml:"tilesetColumns"`
	Tiles          []int `yaml:"tiles"`
}

type HUDConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	FontSize float64 `yaml:"fontSize"`
}

type LayersConfig struct {
	Objects    string   `yaml:"objects"`
	Platforms  string   `yaml:"platforms"`
	Exit       string   `yaml:"exit"`
	Background []string `yaml:"background"`
	Foreground []string `yaml:"foreground"`
}

type StorageConfig struct {
	Database string `yaml:"database"`
	AppName  string `yaml:"appName"`
}

// SceneConfig describes one level: its map, its assets and what follows it.
type SceneConfig struct {
	Key      string            `yaml:"key"`
	Map      string            `yaml:"map"`
	First    bool              `yaml:"first"`
	Next     string            `yaml:"next"`
	Assets   []AssetConfig     `yaml:"assets"`
	Tilesets map[string]string `yaml:"tilesets"` // tileset name -> asset key
	Hitbox   *HitboxConfig     `yaml:"hitbox"`   // overrides player.hitbox for this scene
}

// Final reports whether the scene has no successor.
func (s SceneConfig) Final() bool {
	return s.Next == ""
}

// AssetConfig is one entry of a scene's asset manifest.
// Frame sizes are set for sprite sheets only.
type AssetConfig struct {
	Key         string `yaml:"key"`
	Path        string `yaml:"path"`
	FrameWidth  int    `yaml:"frameWidth"`
	FrameHeight int    `yaml:"frameHeight"`
}
