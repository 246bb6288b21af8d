// Package level holds the mutable state of one running level and the
// payload carried from one level to the next.
package level

import (
	"strconv"

	"github.com/younwookim/tilehop/internal/domain/entity"
	"github.com/younwookim/tilehop/internal/domain/tiled"
)

// Payload is the only state carried across a scene boundary.
type Payload struct {
	Score int
}

// InitialScore returns the score a level starts with.
// The first level always starts from zero; later levels take the payload.
func InitialScore(first bool, in Payload) int {
	if first || in.Score < 0 {
		return 0
	}
	return in.Score
}

// FormatScore renders the HUD score line.
func FormatScore(score int) string {
	return "Score: " + strconv.Itoa(score)
}

// State is the live state of one level.
type State struct {
	Map     *tiled.Map
	Player  *entity.Player // nil when the map has no player spawn
	Pickups []*entity.Pickup
	Enemies []*entity.PatrollingEnemy
	Exit    *tiled.TileLayer

	Score     int
	ScoreText string

	CameraBounds entity.Rect

	// Interactive is false when the map has no object layer. Such a level
	// renders but has no player, input or collision.
	Interactive bool
}

// NewState creates the state for a freshly loaded map.
func NewState(m *tiled.Map, score int) *State {
	if score < 0 {
		score = 0
	}
	s := &State{
		Map:       m,
		Score:     score,
		ScoreText: FormatScore(score),
	}
	if m != nil {
		s.CameraBounds = entity.Rect{W: float64(m.WidthInPixels()), H: float64(m.HeightInPixels())}
	}
	return s
}

// AddScore increments the score and refreshes the HUD text in the same step.
func (s *State) AddScore(n int) {
	if n <= 0 {
		return
	}
	s.Score += n
	s.ScoreText = FormatScore(s.Score)
}

// Payload returns what the next level needs from this one.
func (s *State) Payload() Payload {
	return Payload{Score: s.Score}
}

// ActivePickups counts pickups that can still be collected.
func (s *State) ActivePickups() int {
	n := 0
	for _, p := range s.Pickups {
		if p.Active {
			n++
		}
	}
	return n
}
