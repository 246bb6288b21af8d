package entity

// Hitbox is a body rectangle relative to the top-left of a sprite frame.
type Hitbox struct {
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// Player represents the player entity.
// Pos is the sprite center; the physics body is Hitbox inside the frame.
type Player struct {
	Pos Vec
	Vel Vec

	FrameWidth  float64
	FrameHeight float64
	Hitbox      Hitbox

	CollideWorldBounds bool
	OnGround           bool
	FacingRight        bool
}

// NewPlayer creates a player centered at x, y.
// A zero-size hitbox means the whole frame is the body.
func NewPlayer(x, y, frameW, frameH float64, hitbox Hitbox) *Player {
	if hitbox.Width <= 0 || hitbox.Height <= 0 {
		hitbox = Hitbox{Width: frameW, Height: frameH}
	}
	return &Player{
		Pos:                Vec{X: x, Y: y},
		FrameWidth:         frameW,
		FrameHeight:        frameH,
		Hitbox:             hitbox,
		CollideWorldBounds: true,
		FacingRight:        true,
	}
}

// Position returns the sprite center.
func (p *Player) Position() Vec { return p.Pos }

// Bounds returns the physics body in world coordinates.
func (p *Player) Bounds() Rect {
	return Rect{
		X: p.Pos.X - p.FrameWidth/2 + p.Hitbox.OffsetX,
		Y: p.Pos.Y - p.FrameHeight/2 + p.Hitbox.OffsetY,
		W: p.Hitbox.Width,
		H: p.Hitbox.Height,
	}
}

// BodyCenter returns the center of the physics body.
func (p *Player) BodyCenter() Vec { return p.Bounds().Center() }

// SetBodyCenter moves the player so the body is centered on c.
func (p *Player) SetBodyCenter(c Vec) {
	p.Pos = p.Pos.Add(c.Sub(p.BodyCenter()))
}

// SetVelocityX sets horizontal speed and updates facing.
func (p *Player) SetVelocityX(vx float64) {
	p.Vel.X = vx
	if vx > 0 {
		p.FacingRight = true
	} else if vx < 0 {
		p.FacingRight = false
	}
}

// SetVelocityY sets vertical speed (negative is up).
func (p *Player) SetVelocityY(vy float64) {
	p.Vel.Y = vy
}
