package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/tilehop/internal/domain/entity"
	"github.com/younwookim/tilehop/internal/infrastructure/config"
)

// InputState holds the input sampled for one frame
type InputState struct {
	Left        bool
	Right       bool
	Jump        bool // held
	JumpPressed bool // went down this frame
	Pause       bool
	Confirm     bool
}

// InputSource yields one InputState per frame.
type InputSource interface {
	Poll() InputState
}

// KeyboardInput reads the arrow keys and space from Ebitengine.
type KeyboardInput struct{}

// Poll reads the current keyboard state
func (KeyboardInput) Poll() InputState {
	return InputState{
		Left:        ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:       ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:        ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Pause:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Confirm:     inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	}
}

// InputSystem maps input to player velocity
type InputSystem struct {
	runSpeed  float64
	jumpSpeed float64
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg config.PlayerConfig) *InputSystem {
	return &InputSystem{runSpeed: cfg.RunSpeed, jumpSpeed: cfg.JumpSpeed}
}

// UpdatePlayer sets the player's velocity from input.
// Horizontal speed is set directly with no acceleration. Right wins when both
// directions are held. A jump fires only on the frame the key goes down,
// whether or not the player is on the ground.
func (s *InputSystem) UpdatePlayer(player *entity.Player, input InputState) {
	if player == nil {
		return
	}

	switch {
	case input.Right:
		player.SetVelocityX(s.runSpeed)
	case input.Left:
		player.SetVelocityX(-s.runSpeed)
	default:
		player.SetVelocityX(0)
	}

	if input.JumpPressed {
		player.SetVelocityY(-s.jumpSpeed)
	}
}
