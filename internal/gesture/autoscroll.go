package gesture

import (
	"math"
	"sync"
	"time"

	"barberpanel/internal/metrics"
)

// AutoScroller scrolls the viewport while the pointer rests in the edge band.
// With a positive frame interval a ticker goroutine drives Step; the loop
// exits as soon as the scroller is stopped or the direction becomes neutral.
type AutoScroller struct {
	mu        sync.Mutex
	viewport  Viewport
	edge      float64
	step      float64
	interval  time.Duration
	onFrame   func()
	direction int
	alive     bool
	running   bool
	stop      chan struct{}
}

// NewAutoScroller creates a live scroller. onFrame runs after every frame
// that moved the viewport.
func NewAutoScroller(vp Viewport, th Thresholds, onFrame func()) *AutoScroller {
	return &AutoScroller{
		viewport: vp,
		edge:     th.EdgePx,
		step:     th.ScrollStepPx,
		interval: th.FrameInterval,
		onFrame:  onFrame,
		alive:    true,
		stop:     make(chan struct{}),
	}
}

// Update sets the scroll direction from the pointer's viewport-relative
// position and starts the frame loop when needed.
func (a *AutoScroller) Update(clientY float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.alive || a.viewport == nil {
		return
	}

	b := a.viewport.Bounds()
	switch {
	case clientY < b.Top+a.edge:
		a.direction = -1
	case clientY > b.Bottom-a.edge:
		a.direction = 1
	default:
		a.direction = 0
	}

	if a.direction != 0 && a.interval > 0 && !a.running {
		a.running = true
		go a.loop()
	}
}

// Direction returns -1 (up), 1 (down) or 0.
func (a *AutoScroller) Direction() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.direction
}

// Running reports whether the frame loop goroutine is active.
func (a *AutoScroller) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Step advances one frame. It returns false when there is nothing to do.
func (a *AutoScroller) Step() bool {
	return a.frame(false)
}

// Stop ends the loop. It does not wait for the goroutine.
func (a *AutoScroller) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.alive {
		return
	}
	a.alive = false
	a.running = false
	a.direction = 0
	close(a.stop)
}

func (a *AutoScroller) loop() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			if !a.frame(true) {
				return
			}
		}
	}
}

func (a *AutoScroller) frame(fromLoop bool) bool {
	a.mu.Lock()
	if !a.alive || a.direction == 0 || a.viewport == nil {
		if fromLoop {
			a.running = false
		}
		a.mu.Unlock()
		return false
	}

	cur := a.viewport.ScrollTop()
	next := math.Min(math.Max(0, cur+float64(a.direction)*a.step), a.viewport.MaxScrollTop())
	moved := next != cur
	if moved {
		a.viewport.SetScrollTop(next)
	}
	onFrame := a.onFrame
	a.mu.Unlock()

	if moved {
		metrics.IncAutoScrollFrame()
		if onFrame != nil {
			onFrame()
		}
	}
	return true
}
