package entity

import (
	"math"
	"time"
)

// EaseFunc maps linear progress in [0,1] to eased progress in [0,1].
type EaseFunc func(t float64) float64

// SineInOut accelerates away from and decelerates into both endpoints.
func SineInOut(t float64) float64 {
	return 0.5 - math.Cos(math.Pi*t)/2
}

// Linear is the identity ease.
func Linear(t float64) float64 { return t }

// RepeatForever makes a patrol cycle without end.
const RepeatForever = -1

// PatrollingEnemy moves back and forth along a segment.
// One cycle is Origin -> Dest -> Origin and takes Cycle.
type PatrollingEnemy struct {
	Origin Vec
	Dest   Vec
	Cycle  time.Duration
	Repeat int
	Ease   EaseFunc
	Active bool

	Sprite string
	Width  float64
	Height float64

	elapsed float64 // seconds
	pos     Vec
}

// NewPatrollingEnemy creates an active enemy that patrols forever with sine easing.
func NewPatrollingEnemy(origin, dest Vec, cycle time.Duration, sprite string) *PatrollingEnemy {
	return &PatrollingEnemy{
		Origin: origin,
		Dest:   dest,
		Cycle:  cycle,
		Repeat: RepeatForever,
		Ease:   SineInOut,
		Active: true,
		Sprite: sprite,
		pos:    origin,
	}
}

// Advance moves the enemy dt seconds along its patrol.
func (e *PatrollingEnemy) Advance(dt float64) {
	if !e.Active || dt <= 0 {
		return
	}
	e.elapsed += dt
	e.pos = e.PositionAt(e.elapsed)
}

// Elapsed returns the time spent patrolling, in seconds.
func (e *PatrollingEnemy) Elapsed() float64 { return e.elapsed }

// Done reports whether a finite patrol has used all its cycles.
func (e *PatrollingEnemy) Done() bool {
	if e.Repeat < 0 || e.Cycle <= 0 {
		return false
	}
	return e.elapsed >= e.Cycle.Seconds()*float64(e.Repeat+1)
}

// PositionAt returns where the enemy is after elapsed seconds.
func (e *PatrollingEnemy) PositionAt(elapsed float64) Vec {
	period := e.Cycle.Seconds()
	if period <= 0 {
		return e.Origin
	}
	if e.Repeat >= 0 {
		if limit := period * float64(e.Repeat+1); elapsed >= limit {
			return e.Origin
		}
	}

	phase := math.Mod(elapsed, period) / period
	leg := phase * 2
	if leg > 1 {
		leg = 2 - leg // yoyo
	}

	ease := e.Ease
	if ease == nil {
		ease = Linear
	}
	return e.Origin.Add(e.Dest.Sub(e.Origin).Scale(ease(leg)))
}

// Position returns the current position.
func (e *PatrollingEnemy) Position() Vec { return e.pos }

// Bounds returns the enemy box centered on its position.
func (e *PatrollingEnemy) Bounds() Rect { return RectAround(e.pos, e.Width, e.Height) }

// Pickup is a collectible.
type Pickup struct {
	Pos    Vec
	Width  float64
	Height float64
	Sprite string
	Group  string
	Active bool
}

// NewPickup creates an active pickup centered at x, y.
func NewPickup(x, y, w, h float64, sprite, group string) *Pickup {
	return &Pickup{
		Pos:    Vec{X: x, Y: y},
		Width:  w,
		Height: h,
		Sprite: sprite,
		Group:  group,
		Active: true,
	}
}

// Position returns the pickup center.
func (p *Pickup) Position() Vec { return p.Pos }

// Bounds returns the pickup box.
func (p *Pickup) Bounds() Rect { return RectAround(p.Pos, p.Width, p.Height) }

// Collect deactivates the pickup. It returns false if it was already collected.
func (p *Pickup) Collect() bool {
	if !p.Active {
		return false
	}
	p.Active = false
	return true
}
