package system

import "github.com/younwookim/tilehop/internal/domain/entity"

// Camera follows a target inside fixed world bounds.
type Camera struct {
	ViewW, ViewH float64 // screen size in pixels
	Zoom         float64
	Bounds       entity.Rect

	X, Y float64 // world position of the view's top-left corner
}

// NewCamera creates a camera for a screen of the given size.
func NewCamera(viewW, viewH int, zoom float64, bounds entity.Rect) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{ViewW: float64(viewW), ViewH: float64(viewH), Zoom: zoom, Bounds: bounds}
}

// Follow centers the view on target, clamped to the bounds. A world smaller
// than the view is centered instead.
func (c *Camera) Follow(target entity.Vec) {
	w := c.ViewW / c.Zoom
	h := c.ViewH / c.Zoom
	c.X = clampView(target.X-w/2, c.Bounds.X, c.Bounds.W, w)
	c.Y = clampView(target.Y-h/2, c.Bounds.Y, c.Bounds.H, h)
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(p entity.Vec) entity.Vec {
	return entity.Vec{X: (p.X - c.X) * c.Zoom, Y: (p.Y - c.Y) * c.Zoom}
}

func clampView(v, lo, size, view float64) float64 {
	if size <= view {
		return lo - (view-size)/2
	}
	if v < lo {
		return lo
	}
	if hi := lo + size - view; v > hi {
		return hi
	}
	return v
}
