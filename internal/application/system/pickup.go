package system

import "github.com/younwookim/tilehop/internal/domain/level"

// PickupSystem collects pickups the player overlaps.
type PickupSystem struct {
	points int
}

// NewPickupSystem creates a pickup system awarding points per pickup.
func NewPickupSystem(points int) *PickupSystem {
	if points <= 0 {
		points = 1
	}
	return &PickupSystem{points: points}
}

// Update deactivates every active pickup overlapping the player body and adds
// the score for it. It returns how many were collected this frame.
func (s *PickupSystem) Update(st *level.State) int {
	if st.Player == nil {
		return 0
	}
	body := st.Player.Bounds()
	collected := 0
	for _, p := range st.Pickups {
		if !p.Active || !body.Overlaps(p.Bounds()) {
			continue
		}
		if p.Collect() {
			st.AddScore(s.points)
			collected++
		}
	}
	return collected
}
