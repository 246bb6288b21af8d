// Package tiled holds the in-memory form of maps authored in the Tiled editor.
//
// Decoding lives in infrastructure/tiledmap; everything here is plain data plus
// lookups, so gameplay systems can be tested without touching the filesystem.
package tiled

import "math"

// Attributes holds an object's custom fields keyed by name.
// Values keep the dynamic type they were authored with (string, float64, bool).
type Attributes map[string]any

// Has reports whether the attribute is present.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns a string attribute.
func (a Attributes) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

// Float returns a numeric attribute as float64.
func (a Attributes) Float(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Int returns a numeric attribute truncated toward zero.
func (a Attributes) Int(name string) (int, bool) {
	f, ok := a.Float(name)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// Bool returns a boolean attribute.
func (a Attributes) Bool(name string) (bool, bool) {
	b, ok := a[name].(bool)
	return b, ok
}

// PlacedObject is a point or region from an object layer.
// Custom fields are always in Attributes; there is no raw property container.
type PlacedObject struct {
	ID         int
	Name       string
	Type       string
	X, Y       float64
	Width      float64
	Height     float64
	Attributes Attributes
}

// Attr returns the object's attributes, never nil.
func (o PlacedObject) Attr() Attributes {
	if o.Attributes == nil {
		return Attributes{}
	}
	return o.Attributes
}
