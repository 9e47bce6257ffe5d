package game

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"snake-arcade/config"
	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

// Recorder receives every finished game.
type Recorder interface {
	RecordGame(result manager.GameResult) error
}

// SimulationState is everything a tick mutates. It is owned by Game and only
// touched under its write lock.
type SimulationState struct {
	SessionID string
	Snake     *entity.Snake
	Food      types.Cell
	Score     int
	Status    types.GameState
	Facing    types.Direction
	Steps     int
	Collision types.CollisionType
}

// Game is the state machine of a single snake session.
type Game struct {
	cfg  config.Config
	grid types.Grid

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	directionMgr *manager.DirectionManager
	recorder     Recorder
	logger       *log.Logger
	clock        clock.Clock

	// serializes Reset and restart so only one schedule is ever started
	resetMu sync.Mutex

	mu        sync.RWMutex
	state     *SimulationState
	startTime time.Time
	endTime   time.Time

	quit     chan struct{}
	quitOnce sync.Once
}

type Option func(*Game)

// WithClock replaces the default time.Ticker based clock.
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// NewGame builds a game in the Running state with the clock not yet started.
// Call Reset to begin ticking.
func NewGame(cfg config.Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := manager.ParseSpawnPolicy(cfg.FoodPolicy)
	if err != nil {
		return nil, errors.Wrap(err, "food policy")
	}

	grid := types.Grid{Width: cfg.Columns(), Height: cfg.Rows()}
	collisionMgr := manager.NewCollisionManager(grid)

	g := &Game{
		cfg:          cfg,
		grid:         grid,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(grid, policy, cfg.RandomSeed(), collisionMgr),
		directionMgr: manager.NewDirectionManager(types.Right),
		logger:       log.New(io.Discard, "", 0),
		quit:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.clock == nil {
		g.clock = clock.NewTicker(cfg.TickInterval)
	}

	g.state = g.newState()
	g.startTime = time.Now()
	return g, nil
}

func (g *Game) newState() *SimulationState {
	g.directionMgr.Reset(types.Right)
	snake := entity.NewSnake(g.grid.Center())
	return &SimulationState{
		SessionID: uuid.NewString(),
		Snake:     snake,
		Food:      g.foodMgr.Spawn(snake.Body),
		Status:    types.Running,
		Facing:    types.Right,
	}
}

// Reset starts a new session from any state and (re)starts the clock. It
// must not be called from inside a tick.
func (g *Game) Reset() {
	g.resetMu.Lock()
	defer g.resetMu.Unlock()
	g.reset()
}

func (g *Game) reset() {
	g.clock.Stop()

	g.mu.Lock()
	g.state = g.newState()
	g.startTime = time.Now()
	g.endTime = time.Time{}
	session := g.state.SessionID
	g.mu.Unlock()

	g.logger.Printf("new session %s on a %dx%d grid, %s food", session, g.grid.Width, g.grid.Height, g.foodMgr.Policy())
	g.clock.Start(g.Tick)
}

// Tick advances the simulation by one step and reports whether the game is
// still running. Outside Running it changes nothing.
func (g *Game) Tick() bool {
	g.mu.Lock()
	st := g.state
	if st.Status != types.Running {
		g.mu.Unlock()
		return false
	}

	dir := g.directionMgr.Commit()
	st.Facing = dir
	head := st.Snake.Move(dir)
	if g.collisionMgr.IsFoodCollision(head, st.Food) {
		st.Score += g.cfg.ScoreReward
		st.Snake.Grow()
		st.Food = g.foodMgr.Spawn(st.Snake.Body)
	} else {
		st.Snake.Shrink()
	}
	st.Steps++

	st.Collision = g.collisionMgr.Evaluate(head, st.Snake.Body)
	if st.Collision == types.NoCollision {
		g.mu.Unlock()
		return true
	}

	st.Status = types.GameOver
	g.directionMgr.Freeze()
	g.endTime = time.Now()
	result := manager.GameResult{
		SessionID: st.SessionID,
		StartTime: g.startTime,
		EndTime:   g.endTime,
		Score:     st.Score,
		Length:    st.Snake.Len(),
		Steps:     st.Steps,
		Cause:     st.Collision.String(),
	}
	g.mu.Unlock()

	g.logger.Printf("game over: %s collision at %s, score %d after %d steps",
		result.Cause, head, result.Score, result.Steps)
	if g.recorder != nil {
		if err := g.recorder.RecordGame(result); err != nil {
			g.logger.Printf("record game %s: %v", result.SessionID, err)
		}
	}
	return false
}

// Turn requests a direction change. It is ignored outside Running and when
// it would reverse the snake.
func (g *Game) Turn(dir types.Direction) bool {
	if g.State() != types.Running {
		return false
	}
	return g.directionMgr.Request(dir)
}

// restart resets only a finished game, so two racing restart signals start
// a single new session.
func (g *Game) restart() bool {
	g.resetMu.Lock()
	defer g.resetMu.Unlock()

	if g.State() != types.GameOver {
		return false
	}
	g.reset()
	return true
}

// Quit stops the clock and closes Done. Safe to call more than once.
func (g *Game) Quit() {
	g.quitOnce.Do(func() {
		g.clock.Stop()
		close(g.quit)
		g.logger.Printf("quit")
	})
}

// Done is closed once Quit has been called.
func (g *Game) Done() <-chan struct{} {
	return g.quit
}

func (g *Game) State() types.GameState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Status
}

func (g *Game) Score() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Score
}

// ElapsedTime returns how long the current session has been running, frozen
// at the moment of the collision once the game is over.
func (g *Game) ElapsedTime() time.Duration {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.elapsed()
}

func (g *Game) elapsed() time.Duration {
	if !g.endTime.IsZero() {
		return g.endTime.Sub(g.startTime)
	}
	return time.Since(g.startTime)
}

func (g *Game) Grid() types.Grid {
	return g.grid
}

func (g *Game) Config() config.Config {
	return g.cfg
}
