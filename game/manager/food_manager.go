package manager

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"snake-arcade/game/types"
)

// SpawnPolicy decides how food placement treats occupied cells.
type SpawnPolicy int

const (
	// RejectOccupied re-rolls cells that land on the snake.
	RejectOccupied SpawnPolicy = iota
	// Uniform picks any grid cell, even one under the snake.
	Uniform
)

// MaxSpawnAttempts bounds the re-rolls before falling back to a scan of free cells.
const MaxSpawnAttempts = 64

var ErrUnknownPolicy = errors.New("unknown food spawn policy")

func (p SpawnPolicy) String() string {
	switch p {
	case RejectOccupied:
		return "reject"
	case Uniform:
		return "uniform"
	default:
		return "unknown"
	}
}

func ParseSpawnPolicy(s string) (SpawnPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RejectOccupied, nil
	case "uniform":
		return Uniform, nil
	default:
		return 0, errors.Wrapf(ErrUnknownPolicy, "%q", s)
	}
}

type FoodManager struct {
	grid         types.Grid
	policy       SpawnPolicy
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, policy SpawnPolicy, seed uint64, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		policy:       policy,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

func (fm *FoodManager) Policy() SpawnPolicy {
	return fm.policy
}

// Spawn returns a random cell for the next food. Under RejectOccupied the
// result avoids occupied unless every cell of the grid is taken.
func (fm *FoodManager) Spawn(occupied []types.Cell) types.Cell {
	if fm.policy == Uniform {
		return fm.randomCell()
	}

	for attempt := 0; attempt < MaxSpawnAttempts; attempt++ {
		food := fm.randomCell()
		if fm.collisionMgr.ValidateSpawnPosition(food, occupied) {
			return food
		}
	}

	// A long snake makes re-rolling slow; pick among the free cells directly.
	free := fm.freeCells(occupied)
	if len(free) == 0 {
		return fm.randomCell()
	}
	return free[fm.rng.Intn(len(free))]
}

func (fm *FoodManager) randomCell() types.Cell {
	return types.Cell{
		X: fm.rng.Intn(fm.grid.Width),
		Y: fm.rng.Intn(fm.grid.Height),
	}
}

func (fm *FoodManager) freeCells(occupied []types.Cell) []types.Cell {
	taken := make(map[types.Cell]struct{}, len(occupied))
	for _, c := range occupied {
		taken[c] = struct{}{}
	}
	capacity := fm.grid.Size() - len(taken)
	if capacity < 0 {
		capacity = 0
	}
	free := make([]types.Cell, 0, capacity)
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			c := types.Cell{X: x, Y: y}
			if _, ok := taken[c]; !ok {
				free = append(free, c)
			}
		}
	}
	return free
}
