package world

import (
	"errors"
	"strings"
)

// ErrInvalidDirection is returned for a token that names no direction.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is one of the four compass moves.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// ParseDirection reads a single-letter token, case-insensitive:
// n (norte), s (sur), e (este), o (oeste).
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(token) {
	case "n":
		return North, nil
	case "s":
		return South, nil
	case "e":
		return East, nil
	case "o":
		return West, nil
	default:
		return 0, ErrInvalidDirection
	}
}

// Delta returns the coordinate change for the direction. North decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}
