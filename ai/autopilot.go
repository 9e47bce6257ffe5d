// Package ai steers the snake without a human at the keyboard. It is just
// another input producer: it reads snapshots and sends turn commands.
package ai

import (
	"context"
	"io"
	"log"
	"sort"
	"time"

	"github.com/joonazan/vec2"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

// State is what the pilot senses around the head.
type State struct {
	RelativeFoodDir [2]int  // sign of food - head on each axis
	FoodDistance    int     // Manhattan distance to food
	DangerDirs      [4]bool // indexed like types.Directions: up, right, down, left
	Facing          types.Direction
}

// Sense builds the State for a snapshot. A cell is dangerous when it is
// outside the grid or under a body segment that will still be there after
// the next move.
func Sense(s game.Snapshot) State {
	head := s.Head()
	st := State{
		RelativeFoodDir: [2]int{sign(s.Food.X - head.X), sign(s.Food.Y - head.Y)},
		FoodDistance:    abs(s.Food.X-head.X) + abs(s.Food.Y-head.Y),
		Facing:          s.Direction,
	}
	for i, dir := range types.Directions {
		st.DangerDirs[i] = isDanger(s, head.Step(dir))
	}
	return st
}

func isDanger(s game.Snapshot, c types.Cell) bool {
	if c.X < 0 || c.X >= s.Columns || c.Y < 0 || c.Y >= s.Rows {
		return true
	}
	body := s.Body
	// the tail moves away unless this move eats
	if len(body) > 1 && c != s.Food {
		body = body[:len(body)-1]
	}
	for _, part := range body {
		if part == c {
			return true
		}
	}
	return false
}

// Movement is a candidate turn scored by its distance to the food.
type Movement struct {
	Direction types.Direction
	Magnitude float64
	Target    vec2.Vector
}

type Movements []*Movement

func (p Movements) Len() int           { return len(p) }
func (p Movements) Less(i, j int) bool { return p[i].Magnitude < p[j].Magnitude }
func (p Movements) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func vec(c types.Cell) vec2.Vector {
	return vec2.Vector{X: float64(c.X), Y: float64(c.Y)}
}

// Candidates lists the safe moves from s, closest to the food first. Only
// straight, left and right relative to the facing direction are considered;
// ties keep that order.
func Candidates(s game.Snapshot) Movements {
	head := s.Head()
	food := vec(s.Food)

	turns := []types.Direction{s.Direction, s.Direction.TurnLeft(), s.Direction.TurnRight()}
	moves := make(Movements, 0, len(turns))
	for _, dir := range turns {
		if isDanger(s, head.Step(dir)) {
			continue
		}
		target := vec(head.Step(dir))
		moves = append(moves, &Movement{
			Direction: dir,
			Target:    target,
			Magnitude: target.Minus(food).Length(),
		})
	}
	sort.Stable(moves)
	return moves
}

// Decide returns the direction for the next tick. With no safe move left it
// keeps going straight.
func Decide(s game.Snapshot) types.Direction {
	moves := Candidates(s)
	if len(moves) == 0 {
		return s.Direction
	}
	return moves[0].Direction
}

// Controller is the part of game.Game the pilot drives.
type Controller interface {
	Snapshot() game.Snapshot
	Handle(cmd game.Command) bool
}

// Pilot polls a Controller and sends one turn per observed tick.
type Pilot struct {
	ctl         Controller
	interval    time.Duration
	autoRestart bool
	logger      *log.Logger

	lastSession string
	lastTick    int
}

type PilotOption func(*Pilot)

// WithAutoRestart makes the pilot restart finished games.
func WithAutoRestart() PilotOption {
	return func(p *Pilot) { p.autoRestart = true }
}

func WithPilotLogger(l *log.Logger) PilotOption {
	return func(p *Pilot) { p.logger = l }
}

func NewPilot(ctl Controller, interval time.Duration, opts ...PilotOption) *Pilot {
	p := &Pilot{
		ctl:      ctl,
		interval: interval,
		logger:   log.New(io.Discard, "", 0),
		lastTick: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Step looks at the game once and reports whether it sent a command.
func (p *Pilot) Step() bool {
	s := p.ctl.Snapshot()
	if s.Over() {
		if !p.autoRestart {
			return false
		}
		p.logger.Printf("session %s ended with %d points, restarting", s.SessionID, s.Score)
		return p.ctl.Handle(game.Restart)
	}
	if s.SessionID == p.lastSession && s.Tick == p.lastTick {
		return false
	}
	p.lastSession, p.lastTick = s.SessionID, s.Tick
	return p.ctl.Handle(game.Turn(Decide(s)))
}

// Run steps every interval until ctx is done.
func (p *Pilot) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Step()
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
