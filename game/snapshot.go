package game

import (
	"time"

	"snake-arcade/game/types"
)

// Snapshot is a read-only copy of the simulation for renderers.
type Snapshot struct {
	SessionID string
	Tick      int
	Body      []types.Cell // head first
	Food      types.Cell
	Score     int
	State     types.GameState
	Direction types.Direction // facing, for head orientation
	Collision types.CollisionType
	Columns   int
	Rows      int
	Elapsed   time.Duration
}

func (s Snapshot) Head() types.Cell {
	return s.Body[0]
}

func (s Snapshot) Over() bool {
	return s.State == types.GameOver
}

func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := g.state
	return Snapshot{
		SessionID: st.SessionID,
		Tick:      st.Steps,
		Body:      st.Snake.Cells(),
		Food:      st.Food,
		Score:     st.Score,
		State:     st.Status,
		Direction: st.Facing,
		Collision: st.Collision,
		Columns:   g.grid.Width,
		Rows:      g.grid.Height,
		Elapsed:   g.elapsed(),
	}
}
