package gesture

import (
	"sync"
	"time"
)

// ClickSuppressWindow is how long a finished drag swallows the next click.
const ClickSuppressWindow = 100 * time.Millisecond

// ClickGuard swallows the click event that follows a finished gesture.
type ClickGuard struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	until  time.Time
}

// NewClickGuard creates a guard; a non-positive window uses ClickSuppressWindow.
func NewClickGuard(window time.Duration) *ClickGuard {
	if window <= 0 {
		window = ClickSuppressWindow
	}
	return &ClickGuard{window: window, now: time.Now}
}

// Arm starts the suppression window.
func (g *ClickGuard) Arm() {
	g.mu.Lock()
	g.until = g.now().Add(g.window)
	g.mu.Unlock()
}

// Suppressed reports whether a click arriving now should be ignored.
func (g *ClickGuard) Suppressed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now().Before(g.until)
}
