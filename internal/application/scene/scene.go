// Package scene defines the Scene interface for levels.
//
// The host loop owns a single current scene. It loads the scene off the frame
// goroutine, activates it, and then calls OnFrame and Draw once per frame until
// the scene asks to be replaced by returning a Transition.
package scene

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tilehop/internal/domain/level"
)

// Transition asks the host to replace the current scene.
type Transition struct {
	Key     string
	Payload level.Payload
}

// Scene represents one level.
type Scene interface {
	// Key returns the scene's identifier.
	Key() string

	// OnLoad reads the map and assets. It runs on a background goroutine and
	// must not touch anything the frame loop reads.
	OnLoad(ctx context.Context) error

	// OnActivate is called on the frame goroutine after OnLoad succeeded.
	// It builds the level state.
	OnActivate()

	// OnFrame advances the scene by dt seconds.
	// Returns a transition when the scene wants to be replaced, nil to stay.
	// Returns an error to terminate the game.
	OnFrame(dt float64) (*Transition, error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnExit is called when leaving this scene.
	OnExit()
}

// Factory builds the scene for a key, seeded with the payload carried from
// the previous scene.
type Factory func(key string, payload level.Payload) (Scene, error)
