package types

import "fmt"

// Cell is a grid coordinate: X is the column, Y is the row.
type Cell struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Step returns the neighbouring cell one unit in the given direction.
func (c Cell) Step(d Direction) Cell {
	delta := d.ToCell()
	return Cell{X: c.X + delta.X, Y: c.Y + delta.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int // columns
	Height int // rows
}

// InBounds reports whether c lies inside the grid.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Center returns the spawn cell of a new snake.
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2, Y: g.Height / 2}
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return g.Width * g.Height
}

// Game constants
const (
	DefaultScoreReward = 10 // Points per food eaten
)

// GameState is the state of the simulation state machine.
type GameState int

const (
	Running GameState = iota
	GameOver
)

func (s GameState) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case NoCollision:
		return "none"
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "unknown"
	}
}
