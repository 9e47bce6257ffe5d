package manager

import (
	"sync"
	"testing"

	"snake-arcade/game/types"
)

func TestRequestRejectsReversal(t *testing.T) {
	dm := NewDirectionManager(types.Right)
	if dm.Request(types.Left) {
		t.Error("reversal Right -> Left accepted")
	}
	if got := dm.Commit(); got != types.Right {
		t.Errorf("Commit = %v, want right", got)
	}
}

func TestOppositeTurnsBetweenTicksFollowFacing(t *testing.T) {
	dm := NewDirectionManager(types.Right)
	if !dm.Request(types.Up) || !dm.Request(types.Down) {
		t.Fatal("Up then Down from Right should both be accepted")
	}
	if got := dm.Commit(); got != types.Down {
		t.Errorf("Commit = %v, want down", got)
	}
}

func TestLastValidRequestWins(t *testing.T) {
	dm := NewDirectionManager(types.Right)

	dm.Request(types.Up)
	dm.Request(types.Left) // reverses the facing direction, ignored
	dm.Request(types.Down)
	if got := dm.Commit(); got != types.Down {
		t.Fatalf("Commit = %v, want down", got)
	}

	// now facing down: up is a reversal, left is fine
	if dm.Request(types.Up) {
		t.Error("reversal Down -> Up accepted")
	}
	if !dm.Request(types.Left) {
		t.Error("Left rejected while facing down")
	}
	if got := dm.Commit(); got != types.Left {
		t.Errorf("Commit = %v, want left", got)
	}
}

func TestTwoTurnsBetweenTicksCannotReverse(t *testing.T) {
	dm := NewDirectionManager(types.Right)
	dm.Request(types.Up)
	if dm.Request(types.Left) {
		t.Error("Up then Left would reverse a snake still facing right")
	}
	if got := dm.Commit(); got != types.Up {
		t.Errorf("Commit = %v, want up", got)
	}
}

func TestFreezeAndReset(t *testing.T) {
	dm := NewDirectionManager(types.Right)
	dm.Freeze()
	if dm.Request(types.Up) {
		t.Error("request accepted while frozen")
	}
	dm.Reset(types.Right)
	if !dm.Request(types.Up) {
		t.Error("request rejected after reset")
	}
	if dm.Request(types.None) {
		t.Error("None accepted")
	}
}

func TestConcurrentRequests(t *testing.T) {
	dm := NewDirectionManager(types.Right)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					dm.Request(types.Directions[i])
				}
			}
		}(i)
	}

	prev := dm.Commit()
	for i := 0; i < 1000; i++ {
		got := dm.Commit()
		if !got.Valid() {
			t.Fatalf("torn direction %d", got)
		}
		if got == prev.Opposite() {
			t.Fatalf("tick %d reversed %v -> %v", i, prev, got)
		}
		prev = got
	}
	close(stop)
	wg.Wait()
}
