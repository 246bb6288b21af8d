package system

import (
	"github.com/younwookim/tilehop/internal/domain/entity"
	"github.com/younwookim/tilehop/internal/domain/level"
	"github.com/younwookim/tilehop/internal/domain/tiled"
	"github.com/younwookim/tilehop/internal/infrastructure/config"
)

// Object types understood by the default spawner.
const (
	TypePlayerSpawn  = "playerSpawn"
	TypePickups      = "pickups"
	TypeEnemySpawner = "enemySpawner"
)

// SpawnFunc turns one placed object into entities on the level state.
type SpawnFunc func(st *level.State, obj tiled.PlacedObject)

// Spawner dispatches placed objects to handlers by type.
type Spawner struct {
	handlers map[string]SpawnFunc
}

// NewSpawner creates a spawner with no handlers.
func NewSpawner() *Spawner {
	return &Spawner{handlers: make(map[string]SpawnFunc)}
}

// NewDefaultSpawner registers the player, pickup and enemy handlers.
func NewDefaultSpawner(cfg *config.GameConfig, scene config.SceneConfig) *Spawner {
	s := NewSpawner()

	frameW, frameH := cfg.FrameFor(scene)
	hb := cfg.HitboxFor(scene)
	hitbox := entity.Hitbox{OffsetX: hb.OffsetX, OffsetY: hb.OffsetY, Width: hb.Width, Height: hb.Height}

	s.Register(TypePlayerSpawn, func(st *level.State, obj tiled.PlacedObject) {
		// Last spawn point wins.
		st.Player = entity.NewPlayer(obj.X, obj.Y, float64(frameW), float64(frameH), hitbox)
	})

	pickup := cfg.Pickup
	s.Register(TypePickups, func(st *level.State, obj tiled.PlacedObject) {
		sprite, _ := obj.Attr().String("sprite")
		group := pickup.Group
		if g, ok := obj.Attr().String("group"); ok {
			group = g
		}
		st.Pickups = append(st.Pickups, entity.NewPickup(obj.X, obj.Y, pickup.Width, pickup.Height, sprite, group))
	})

	enemy := cfg.Enemy
	s.Register(TypeEnemySpawner, func(st *level.State, obj tiled.PlacedObject) {
		y := obj.Y + obj.Height
		e := entity.NewPatrollingEnemy(
			entity.Vec{X: obj.X, Y: y},
			entity.Vec{X: obj.X + obj.Width, Y: y},
			enemy.Cycle(),
			enemy.Sprite,
		)
		if sprite, ok := obj.Attr().String("sprite"); ok {
			e.Sprite = sprite
		}
		e.Width, e.Height = enemy.Width, enemy.Height
		st.Enemies = append(st.Enemies, e)
	})

	return s
}

// Register sets the handler for an object type, replacing any previous one.
func (s *Spawner) Register(objType string, fn SpawnFunc) {
	s.handlers[objType] = fn
}

// Handles reports whether objType has a handler.
func (s *Spawner) Handles(objType string) bool {
	_, ok := s.handlers[objType]
	return ok
}

// Spawn runs each object through its handler in layer order.
// Objects of unknown type are skipped. It returns the number of objects spawned.
func (s *Spawner) Spawn(st *level.State, layer *tiled.ObjectLayer) int {
	if layer == nil {
		return 0
	}
	n := 0
	for _, obj := range layer.Objects {
		fn, ok := s.handlers[obj.Type]
		if !ok {
			continue
		}
		fn(st, obj)
		n++
	}
	return n
}
