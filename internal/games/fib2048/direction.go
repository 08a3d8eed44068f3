package fib2048

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/fib2048/internal/fib"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Vec is a unit step on the board grid. Y grows downward.
type Vec struct {
	DX, DY int
}

var directionVecs = [...]Vec{
	DirUp:    {DX: 0, DY: -1},
	DirDown:  {DX: 0, DY: 1},
	DirLeft:  {DX: -1, DY: 0},
	DirRight: {DX: 1, DY: 0},
}

var directionNames = [...]string{
	DirUp:    "up",
	DirDown:  "down",
	DirLeft:  "left",
	DirRight: "right",
}

// Directions lists all four directions.
func Directions() []Direction {
	return []Direction{DirUp, DirDown, DirLeft, DirRight}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// Vec returns the unit step for d.
func (d Direction) Vec() Vec {
	if !d.Valid() {
		return Vec{}
	}
	return directionVecs[d]
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts "up", "down", "left", "right" and their
// single-letter forms u/d/l/r, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", fib.ErrInvalidArgument, s)
}
