// Package game provides the main game loop and state management.
package game

// State represents the current screen of the full-screen UI.
type State int

const (
	// StateMenu is the main menu.
	StateMenu State = iota
	// StateInstructions shows how to play.
	StateInstructions
	// StateExplore is the map view where direction keys move the player.
	StateExplore
	// StateInventory lists carried items and waits for a selection.
	StateInventory
	// StateResult shows the win or loss message of a finished session.
	StateResult
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateInstructions:
		return "instructions"
	case StateExplore:
		return "explore"
	case StateInventory:
		return "inventory"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}
