package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/tilehop/internal/domain/entity"
	"github.com/younwookim/tilehop/internal/domain/tiled"
	"github.com/younwookim/tilehop/internal/infrastructure/config"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBounds
	collisionTypePlayer
	collisionTypeGroundSensor
)

// groundSensorHeight is the depth of the strip under the player body that
// detects standing on a platform.
const groundSensorHeight = 2.0

// PhysicsSystem steps the player body against the Platforms layer in a
// Chipmunk space. Coordinates are screen-space: y grows downward, so gravity
// is positive.
type PhysicsSystem struct {
	space  *cp.Space
	player *entity.Player
	body   *cp.Body
	shape  *cp.Shape

	grounded     bool
	staticShapes int
}

// NewPhysicsSystem builds the static world from the platform layer.
// Every non-empty platform tile collides. World bounds are added as segments.
func NewPhysicsSystem(cfg config.PhysicsConfig, platforms *tiled.TileLayer, worldW, worldH float64) *PhysicsSystem {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	s := &PhysicsSystem{space: space}
	s.addPlatforms(platforms)
	s.addWorldBounds(worldW, worldH)
	s.setupHandlers()
	return s
}

// StaticShapes returns the number of static shapes in the world.
func (s *PhysicsSystem) StaticShapes() int {
	return s.staticShapes
}

// AttachPlayer adds a dynamic body for the player. Rotation is locked.
func (s *PhysicsSystem) AttachPlayer(p *entity.Player) {
	if p == nil {
		return
	}
	s.DetachPlayer()

	box := p.Bounds()
	body := cp.NewBody(1, math.Inf(1))
	c := box.Center()
	body.SetPosition(cp.Vector{X: c.X, Y: c.Y})
	body.SetVelocity(p.Vel.X, p.Vel.Y)

	shape := cp.NewBox(body, box.W, box.H, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)

	sensor := cp.NewBox2(body, cp.BB{
		L: -box.W/2 + 1,
		B: box.H / 2,
		R: box.W/2 - 1,
		T: box.H/2 + groundSensorHeight,
	}, 0)
	sensor.SetSensor(true)
	sensor.SetCollisionType(collisionTypeGroundSensor)

	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.space.AddShape(sensor)

	s.player = p
	s.body = body
	s.shape = shape
}

// DetachPlayer removes the player body, if any.
func (s *PhysicsSystem) DetachPlayer() {
	if s.body == nil {
		return
	}
	body := s.body
	var shapes []*cp.Shape
	body.EachShape(func(shape *cp.Shape) {
		shapes = append(shapes, shape)
	})
	for _, shape := range shapes {
		s.space.RemoveShape(shape)
	}
	s.space.RemoveBody(body)
	s.player, s.body, s.shape = nil, nil, nil
}

// Update pushes the player's velocity into the body, steps the space and
// copies the result back.
func (s *PhysicsSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if s.player != nil {
		s.body.SetVelocity(s.player.Vel.X, s.player.Vel.Y)
	}

	s.grounded = false
	s.space.Step(dt)

	if s.player == nil {
		return
	}
	pos := s.body.Position()
	vel := s.body.Velocity()
	s.player.SetBodyCenter(entity.Vec{X: pos.X, Y: pos.Y})
	s.player.Vel = entity.Vec{X: vel.X, Y: vel.Y}
	s.player.OnGround = s.grounded
}

// addPlatforms merges runs of solid tiles into rectangles, then grows each
// rectangle downward while the rows below match.
func (s *PhysicsSystem) addPlatforms(layer *tiled.TileLayer) {
	if layer == nil || layer.Width <= 0 || layer.Height <= 0 {
		return
	}
	tw := float64(layer.TileWidth)
	th := float64(layer.TileHeight)
	solid := func(x, y int) bool {
		_, ok := layer.TileAt(x, y)
		return ok
	}

	processed := make([]bool, layer.Width*layer.Height)
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			idx := y*layer.Width + x
			if processed[idx] || !solid(x, y) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < layer.Width && !processed[idx+w] && solid(x+w, y) {
				w++
			}

			h := 1
		grow:
			for y+h < layer.Height {
				for xi := x; xi < x+w; xi++ {
					if processed[(y+h)*layer.Width+xi] || !solid(xi, y+h) {
						break grow
					}
				}
				h++
			}

			x0, y0 := float64(x)*tw, float64(y)*th
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*tw, T: y0 + float64(h)*th}
			shape := cp.NewBox2(s.space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			shape.SetCollisionType(collisionTypeSolid)
			s.space.AddShape(shape)
			s.staticShapes++

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*layer.Width+xx] = true
				}
			}
		}
	}
}

func (s *PhysicsSystem) addWorldBounds(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: w, Y: 0}},
		{{X: 0, Y: h}, {X: w, Y: h}},
		{{X: 0, Y: 0}, {X: 0, Y: h}},
		{{X: w, Y: 0}, {X: w, Y: h}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(s.space.StaticBody, seg[0], seg[1], 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeBounds)
		s.space.AddShape(shape)
		s.staticShapes++
	}
}

func (s *PhysicsSystem) setupHandlers() {
	markGrounded := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.grounded = true
		}
		return true
	}
	for _, other := range []cp.CollisionType{collisionTypeSolid, collisionTypeBounds} {
		ground := s.space.NewCollisionHandler(collisionTypeGroundSensor, other)
		ground.UserData = s
		ground.PreSolveFunc = markGrounded
	}

	// World bounds only stop a player that opted into them.
	bounds := s.space.NewCollisionHandler(collisionTypePlayer, collisionTypeBounds)
	bounds.UserData = s
	bounds.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		return ok && sys.player != nil && sys.player.CollideWorldBounds
	}
}
