package scrollsync

import (
	"sync"
	"time"
)

// FrameScheduler runs a callback on the next render frame.
type FrameScheduler interface {
	Schedule(fn func())
}

// TimerScheduler approximates a display frame with a timer.
type TimerScheduler struct {
	Interval time.Duration
}

// Schedule runs fn once after the frame interval on its own goroutine.
func (s TimerScheduler) Schedule(fn func()) {
	interval := s.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	time.AfterFunc(interval, fn)
}

// ManualScheduler queues callbacks until Flush. Used by tests and headless
// renderers that drive frames themselves.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (s *ManualScheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush runs the callbacks queued so far and returns how many ran.
func (s *ManualScheduler) Flush() int {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}
