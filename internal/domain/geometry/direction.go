package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidDirection is returned for resize tokens outside n/s/e/w and the corners
var ErrInvalidDirection = errors.New("invalid resize direction")

// Direction is a bit set of the window edges a resize handle moves
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West
)

var directionTokens = map[string]Direction{
	"n":  North,
	"s":  South,
	"e":  East,
	"w":  West,
	"ne": North | East,
	"nw": North | West,
	"se": South | East,
	"sw": South | West,
}

// ParseDirection converts a handle token into a Direction
func ParseDirection(token string) (Direction, error) {
	d, ok := directionTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
	}
	return d, nil
}

// Has reports whether d moves the given edge
func (d Direction) Has(edge Direction) bool {
	return d&edge != 0
}

// String returns the handle token
func (d Direction) String() string {
	var s string
	if d.Has(North) {
		s += "n"
	}
	if d.Has(South) {
		s += "s"
	}
	if d.Has(East) {
		s += "e"
	}
	if d.Has(West) {
		s += "w"
	}
	if s == "" {
		return "none"
	}
	return s
}
