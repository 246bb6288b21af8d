package system

import (
	"github.com/younwookim/tilehop/internal/domain/level"
)

// ExitTrigger reports when the player stands on an exit tile.
type ExitTrigger struct {
	ids map[int]struct{}
}

// NewExitTrigger creates a trigger for the given tile ids.
func NewExitTrigger(ids map[int]struct{}) *ExitTrigger {
	return &ExitTrigger{ids: ids}
}

// IsExit reports whether id is an exit tile.
func (t *ExitTrigger) IsExit(id int) bool {
	_, ok := t.ids[id]
	return ok
}

// Evaluate samples the exit layer at the player's position.
// No player, no exit layer or an empty cell all mean false.
func (t *ExitTrigger) Evaluate(st *level.State) bool {
	if st.Player == nil || st.Exit == nil {
		return false
	}
	pos := st.Player.Position()
	tile, ok := st.Exit.TileAtWorld(pos.X, pos.Y)
	if !ok {
		return false
	}
	return t.IsExit(tile.Index)
}
