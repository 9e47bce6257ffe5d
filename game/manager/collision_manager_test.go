package manager

import (
	"testing"

	"snake-arcade/game/types"
)

func TestEvaluateWall(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 30, Height: 30})

	// snake of length 5 moving right with its head at (29,10)
	body := []types.Cell{{X: 30, Y: 10}, {X: 29, Y: 10}, {X: 28, Y: 10}, {X: 27, Y: 10}, {X: 26, Y: 10}}
	if got := cm.Evaluate(body[0], body); got != types.WallCollision {
		t.Errorf("Evaluate = %v, want wall", got)
	}

	for _, head := range []types.Cell{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 30}} {
		if got := cm.Evaluate(head, []types.Cell{head}); got != types.WallCollision {
			t.Errorf("Evaluate(%v) = %v, want wall", head, got)
		}
	}
}

func TestEvaluateSelf(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 30, Height: 30})

	// new head (5,4) equals body[3]
	body := []types.Cell{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 4}, {X: 6, Y: 4}}
	if got := cm.Evaluate(body[0], body); got != types.SelfCollision {
		t.Errorf("Evaluate = %v, want self", got)
	}
}

func TestEvaluateNone(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 30, Height: 30})
	body := []types.Cell{{X: 16, Y: 15}, {X: 15, Y: 15}}
	if got := cm.Evaluate(body[0], body); got != types.NoCollision {
		t.Errorf("Evaluate = %v, want none", got)
	}
	// the head is never compared with itself
	if got := cm.Evaluate(body[0], body[:1]); got != types.NoCollision {
		t.Errorf("single cell body = %v, want none", got)
	}
}

func TestValidateSpawnPosition(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 4, Height: 4})
	occupied := []types.Cell{{X: 1, Y: 1}}
	if cm.ValidateSpawnPosition(types.Cell{X: 1, Y: 1}, occupied) {
		t.Error("occupied cell accepted")
	}
	if cm.ValidateSpawnPosition(types.Cell{X: 4, Y: 0}, occupied) {
		t.Error("out of bounds cell accepted")
	}
	if !cm.ValidateSpawnPosition(types.Cell{X: 2, Y: 2}, occupied) {
		t.Error("free cell rejected")
	}
}
