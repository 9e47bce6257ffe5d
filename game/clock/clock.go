// Package clock provides the fixed-rate tick sources that drive the game loop.
package clock

import (
	"sync"
	"time"
)

// StepFunc runs one tick and reports whether the clock should keep going.
type StepFunc func() bool

// Clock is a repeating tick source. Start replaces any running schedule.
// Stop blocks until an in-flight step has returned, so it must not be called
// from inside a StepFunc.
type Clock interface {
	Start(step StepFunc)
	Stop()
	Running() bool
}

// Ticker drives steps from a time.Ticker on its own goroutine. Steps never
// overlap.
type Ticker struct {
	interval time.Duration

	mutex sync.Mutex
	stop  chan struct{}
	done  chan struct{}
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

func (t *Ticker) Start(step StepFunc) {
	t.Stop()

	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.loop(step, t.stop, t.done)
}

func (t *Ticker) loop(step StepFunc, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Stop may race with a pending tick; it wins.
			select {
			case <-stop:
				return
			default:
			}
			if !step() {
				return
			}
		}
	}
}

func (t *Ticker) Stop() {
	t.mutex.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mutex.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the loop goroutine is alive. It turns false on its
// own once a step returns false.
func (t *Ticker) Running() bool {
	t.mutex.Lock()
	done := t.done
	t.mutex.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Manual fires steps only when Advance is called. Used for deterministic
// runs and tests.
type Manual struct {
	mutex   sync.Mutex
	step    StepFunc
	running bool
	starts  int
	stops   int
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Start(step StepFunc) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.step = step
	m.running = true
	m.starts++
}

func (m *Manual) Stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.running {
		m.stops++
	}
	m.running = false
}

func (m *Manual) Running() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.running
}

// Advance fires up to n steps and returns how many ran. It stops early when
// a step returns false or the clock is stopped.
func (m *Manual) Advance(n int) int {
	fired := 0
	for i := 0; i < n; i++ {
		m.mutex.Lock()
		step, running := m.step, m.running
		m.mutex.Unlock()
		if !running || step == nil {
			break
		}
		fired++
		if !step() {
			m.mutex.Lock()
			m.running = false
			m.mutex.Unlock()
			break
		}
	}
	return fired
}

// Starts returns how many times Start was called.
func (m *Manual) Starts() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.starts
}
