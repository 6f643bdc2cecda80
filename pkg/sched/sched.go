// Package sched abstracts periodic timers behind an injectable interface
// so the now-line refresh can be driven by a real ticker in production
// and stepped manually in tests, and so teardown is explicit and
// leak-free.
package sched

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. Idempotent.
type CancelFunc func()

// Scheduler runs a callback at a fixed period until cancelled.
type Scheduler interface {
	// Schedule invokes fn with the current time every period. The
	// returned CancelFunc stops future invocations; callers must invoke
	// it on teardown.
	Schedule(period time.Duration, fn func(now time.Time)) CancelFunc
}

// =============================================================================
// Ticker - Production Scheduler
// =============================================================================

// Ticker is the real-time Scheduler backed by time.Ticker.
type Ticker struct{}

// NewTicker returns a ticker-backed scheduler.
func NewTicker() *Ticker { return &Ticker{} }

// Schedule runs fn on a goroutine every period until cancelled.
func (*Ticker) Schedule(period time.Duration, fn func(now time.Time)) CancelFunc {
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case now := <-ticker.C:
				fn(now)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// =============================================================================
// Manual - Test Scheduler
// =============================================================================

// Manual is a Scheduler stepped by hand, for tests that simulate time
// without real delays.
type Manual struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]manualEntry
}

type manualEntry struct {
	period time.Duration
	fn     func(now time.Time)
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{entries: make(map[int]manualEntry)}
}

// Schedule registers fn without starting any timer.
func (m *Manual) Schedule(period time.Duration, fn func(now time.Time)) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.entries[id] = manualEntry{period: period, fn: fn}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.entries, id)
		})
	}
}

// Fire invokes every registered callback once with the given time.
func (m *Manual) Fire(now time.Time) {
	m.mu.Lock()
	fns := make([]func(time.Time), 0, len(m.entries))
	for _, e := range m.entries {
		fns = append(fns, e.fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(now)
	}
}

// Active returns the number of registered callbacks; zero after all
// cancels means no leaked timers.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
