package entity

import (
	"snake-arcade/game/types"
)

// Snake is the ordered body of the player, head first.
type Snake struct {
	Body []types.Cell

	// set by Move, settled by Grow or Shrink
	moved bool
}

func NewSnake(startPos types.Cell) *Snake {
	return &Snake{
		Body: []types.Cell{startPos},
	}
}

// Move prepends the cell one step from the head and returns it. It does not
// check bounds or collisions.
func (s *Snake) Move(dir types.Direction) types.Cell {
	newHead := s.GetHead().Step(dir)
	s.Body = append(s.Body, types.Cell{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
	s.moved = true
	return newHead
}

// Grow keeps the tail cell for the current move.
func (s *Snake) Grow() {
	s.moved = false
}

// Shrink drops the tail cell left behind by the current move.
func (s *Snake) Shrink() {
	if !s.moved || len(s.Body) < 2 {
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
	s.moved = false
}

func (s *Snake) GetHead() types.Cell {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Cells returns a copy of the body, head first.
func (s *Snake) Cells() []types.Cell {
	body := make([]types.Cell, len(s.Body))
	copy(body, s.Body)
	return body
}
