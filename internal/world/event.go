package world

import (
	"github.com/samdwyer/mazmorra/internal/combat"
	"github.com/samdwyer/mazmorra/internal/entity"
)

// EventKind identifies what happened during a command.
type EventKind int

const (
	EventInvalidDirection EventKind = iota
	EventOutOfBounds
	EventWall
	EventEncounter      // Stepped onto a live enemy; combat follows
	EventEnemyDefeated  // Enemy removed from the grid
	EventPlayerDefeated // Player died; the move was aborted
	EventItemPicked     // Item moved from the cell into the inventory
	EventExitFound
	EventMoved
	EventSessionOver // Command ignored because the session already ended
)

// String returns a human-readable event name.
func (k EventKind) String() string {
	switch k {
	case EventInvalidDirection:
		return "invalid_direction"
	case EventOutOfBounds:
		return "out_of_bounds"
	case EventWall:
		return "wall"
	case EventEncounter:
		return "encounter"
	case EventEnemyDefeated:
		return "enemy_defeated"
	case EventPlayerDefeated:
		return "player_defeated"
	case EventItemPicked:
		return "item_picked"
	case EventExitFound:
		return "exit_found"
	case EventMoved:
		return "moved"
	case EventSessionOver:
		return "session_over"
	default:
		return "unknown"
	}
}

// Event is one structured outcome of a command. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind   EventKind
	X, Y   int            // Target cell
	Enemy  string         // Enemy name for encounter/defeat events
	Item   entity.Item    // Picked item
	Combat *combat.Result // Set on EventEnemyDefeated and EventPlayerDefeated
}

// MoveResult collects the events of a single move command in the order they
// happened.
type MoveResult struct {
	Direction Direction
	Events    []Event
	Moved     bool // Player position changed
}

// Has reports whether an event of the given kind occurred.
func (r MoveResult) Has(kind EventKind) bool {
	_, ok := r.Find(kind)
	return ok
}

// Find returns the first event of the given kind.
func (r MoveResult) Find(kind EventKind) (Event, bool) {
	for _, ev := range r.Events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func (r *MoveResult) add(ev Event) {
	r.Events = append(r.Events, ev)
}

// UseResult reports the outcome of an inventory command.
type UseResult struct {
	Cancelled bool          // Choice 0: nothing happened
	Effect    entity.Effect // Set when an item was consumed
}

// Status is the terminal state of a session.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}
