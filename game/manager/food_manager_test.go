package manager

import (
	"testing"

	"github.com/pkg/errors"

	"snake-arcade/game/types"
)

func newTestFoodManager(grid types.Grid, policy SpawnPolicy, seed uint64) *FoodManager {
	return NewFoodManager(grid, policy, seed, NewCollisionManager(grid))
}

func TestSpawnRejectsOccupied(t *testing.T) {
	grid := types.Grid{Width: 30, Height: 30}
	fm := newTestFoodManager(grid, RejectOccupied, 7)

	occupied := []types.Cell{{X: 16, Y: 15}, {X: 15, Y: 15}}
	for i := 0; i < 500; i++ {
		food := fm.Spawn(occupied)
		if !grid.InBounds(food) {
			t.Fatalf("food %v out of bounds", food)
		}
		for _, c := range occupied {
			if food == c {
				t.Fatalf("food spawned on snake at %v", food)
			}
		}
	}
}

func TestSpawnFindsLastFreeCell(t *testing.T) {
	grid := types.Grid{Width: 3, Height: 3}
	fm := newTestFoodManager(grid, RejectOccupied, 1)

	var occupied []types.Cell
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 2 && y == 1 {
				continue
			}
			occupied = append(occupied, types.Cell{X: x, Y: y})
		}
	}
	for i := 0; i < 20; i++ {
		if food := fm.Spawn(occupied); food != (types.Cell{X: 2, Y: 1}) {
			t.Fatalf("Spawn = %v, want the only free cell (2,1)", food)
		}
	}
}

func TestSpawnFullGridStaysInBounds(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 1}
	fm := newTestFoodManager(grid, RejectOccupied, 3)
	food := fm.Spawn([]types.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}})
	if !grid.InBounds(food) {
		t.Errorf("food %v out of bounds", food)
	}
}

func TestSpawnUniformIgnoresOccupied(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 1}
	fm := newTestFoodManager(grid, Uniform, 11)

	occupied := []types.Cell{{X: 0, Y: 0}}
	onSnake := 0
	for i := 0; i < 200; i++ {
		if fm.Spawn(occupied) == (types.Cell{X: 0, Y: 0}) {
			onSnake++
		}
	}
	if onSnake == 0 {
		t.Error("uniform policy never placed food on the snake in 200 draws")
	}
}

func TestSpawnIsDeterministicForSeed(t *testing.T) {
	grid := types.Grid{Width: 30, Height: 30}
	a := newTestFoodManager(grid, RejectOccupied, 42)
	b := newTestFoodManager(grid, RejectOccupied, 42)
	for i := 0; i < 50; i++ {
		if fa, fb := a.Spawn(nil), b.Spawn(nil); fa != fb {
			t.Fatalf("draw %d differs: %v vs %v", i, fa, fb)
		}
	}
}

func TestParseSpawnPolicy(t *testing.T) {
	cases := map[string]SpawnPolicy{"": RejectOccupied, "reject": RejectOccupied, "Uniform": Uniform}
	for in, want := range cases {
		got, err := ParseSpawnPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseSpawnPolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSpawnPolicy("random"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}
