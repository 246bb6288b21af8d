package state

// SceneState is the lifecycle state of a level scene
type SceneState int

const (
	StateLoading SceneState = iota
	StateActive
	StatePaused
	StateTransitioning
	StateCleared
)

// String returns the string representation of the scene state
func (s SceneState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateActive:
		return "Active"
	case StatePaused:
		return "Paused"
	case StateTransitioning:
		return "Transitioning"
	case StateCleared:
		return "Cleared"
	default:
		return "Unknown"
	}
}

// Simulating reports whether gameplay systems run in this state.
func (s SceneState) Simulating() bool {
	return s == StateActive
}

// Terminal reports whether the scene has finished and only waits to be replaced
// or restarted.
func (s SceneState) Terminal() bool {
	return s == StateTransitioning || s == StateCleared
}
