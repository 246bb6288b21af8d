package system

import "github.com/younwookim/tilehop/internal/domain/level"

// UpdatePatrols advances every enemy along its patrol. Enemies do not interact
// with the player.
func UpdatePatrols(st *level.State, dt float64) {
	for _, e := range st.Enemies {
		e.Advance(dt)
	}
}
