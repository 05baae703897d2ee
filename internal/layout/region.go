package layout

import (
	"math"
	"sync"
)

// Point is a pointer position in client coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box in client coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Height returns the box height.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// ScrollRegion is an in-memory vertically scrollable area: the time ruler or
// one staff column. It satisfies gesture.Viewport and scrollsync.Scroller.
type ScrollRegion struct {
	mu            sync.Mutex
	name          string
	bounds        Rect
	contentHeight float64
	top           float64
	onScroll      func(*ScrollRegion)
}

// NewScrollRegion creates a region showing bounds over contentHeight pixels.
func NewScrollRegion(name string, bounds Rect, contentHeight float64) *ScrollRegion {
	return &ScrollRegion{name: name, bounds: bounds, contentHeight: contentHeight}
}

// Name identifies the region.
func (r *ScrollRegion) Name() string {
	return r.name
}

// OnScroll registers a hook fired after every effective scroll change.
func (r *ScrollRegion) OnScroll(fn func(*ScrollRegion)) {
	r.mu.Lock()
	r.onScroll = fn
	r.mu.Unlock()
}

// Bounds returns the visible box.
func (r *ScrollRegion) Bounds() Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bounds
}

// ScrollTop returns the current vertical offset.
func (r *ScrollRegion) ScrollTop() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// MaxScrollTop returns the largest reachable offset.
func (r *ScrollRegion) MaxScrollTop() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxLocked()
}

func (r *ScrollRegion) maxLocked() float64 {
	return math.Max(0, r.contentHeight-r.bounds.Height())
}

// SetScrollTop moves the region, clamped to [0, MaxScrollTop].
func (r *ScrollRegion) SetScrollTop(px float64) {
	r.mu.Lock()
	if math.IsNaN(px) {
		px = 0
	}
	px = math.Min(math.Max(0, px), r.maxLocked())
	if px == r.top {
		r.mu.Unlock()
		return
	}
	r.top = px
	hook := r.onScroll
	r.mu.Unlock()

	if hook != nil {
		hook(r)
	}
}
