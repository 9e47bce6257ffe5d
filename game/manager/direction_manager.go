package manager

import (
	"sync"

	"snake-arcade/game/types"
)

// DirectionManager buffers the latest accepted turn between two ticks.
//
// Requests come from input goroutines; the tick goroutine calls Commit once
// per step. A request is rejected when it reverses the direction applied by
// the previous tick, so several turns between two ticks can never add up to
// a 180 degree turn. Last valid request wins.
type DirectionManager struct {
	mu        sync.Mutex
	committed types.Direction // used by the next tick
	facing    types.Direction // applied by the last tick
	frozen    bool
}

func NewDirectionManager(initial types.Direction) *DirectionManager {
	return &DirectionManager{
		committed: initial,
		facing:    initial,
	}
}

// Request records dir as the committed direction. It reports whether the
// request was accepted; rejection is policy, not an error.
//
// The reversal check compares against facing, not committed: from Right,
// Up then Down between two ticks are both accepted and the snake turns down.
func (dm *DirectionManager) Request(dir types.Direction) bool {
	if !dir.Valid() {
		return false
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.frozen || dir == dm.facing.Opposite() {
		return false
	}
	dm.committed = dir
	return true
}

// Commit returns the direction for this tick and marks it as the facing one.
func (dm *DirectionManager) Commit() types.Direction {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.facing = dm.committed
	return dm.committed
}

// Freeze rejects all requests until Reset.
func (dm *DirectionManager) Freeze() {
	dm.mu.Lock()
	dm.frozen = true
	dm.mu.Unlock()
}

func (dm *DirectionManager) Reset(dir types.Direction) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.committed = dir
	dm.facing = dir
	dm.frozen = false
}
