package state

// GameState represents the current state of the playing scene
type GameState int

const (
	StateLoading GameState = iota // player's chunk is not loaded, ticks freeze
	StatePlaying
	StatePaused
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Simulating reports whether ticks run in this state
func (s GameState) Simulating() bool {
	return s == StateLoading || s == StatePlaying
}
