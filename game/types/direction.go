package types

import "strings"

// Direction is a cardinal direction of movement.
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// Directions lists the four valid directions in clockwise order.
var Directions = [4]Direction{Up, Right, Down, Left}

// ToCell converts a Direction to its unit displacement. Up decrements Y.
func (d Direction) ToCell() Cell {
	switch d {
	case Up:
		return Cell{X: 0, Y: -1}
	case Right:
		return Cell{X: 1, Y: 0}
	case Down:
		return Cell{X: 0, Y: 1}
	case Left:
		return Cell{X: -1, Y: 0}
	default:
		return Cell{}
	}
}

// Opposite returns the geometric opposite of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return None
	}
}

// TurnLeft returns the direction after a 90 degree counter-clockwise turn.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the direction after a 90 degree clockwise turn.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

// Valid reports whether d is one of the four movement directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Right, Down, Left:
		return true
	default:
		return false
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// ParseDirection maps "up", "DOWN", "Left"... to a Direction. Unknown names yield None.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up
	case "right":
		return Right
	case "down":
		return Down
	case "left":
		return Left
	default:
		return None
	}
}
