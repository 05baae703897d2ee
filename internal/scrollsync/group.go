// Package scrollsync keeps the time ruler and the staff columns at the same
// vertical offset.
package scrollsync

import (
	"sync"

	"github.com/rs/zerolog"

	"barberpanel/internal/layout"
)

// Scroller is a vertically scrollable region.
type Scroller interface {
	ScrollTop() float64
	SetScrollTop(px float64)
}

// Group propagates the offset of whichever member scrolled to the others.
// Writes made while propagating do not trigger another round.
type Group struct {
	mu      sync.Mutex
	members []Scroller
	syncing bool
	frames  FrameScheduler
	log     zerolog.Logger
}

// NewGroup creates an empty group.
func NewGroup(frames FrameScheduler, logger zerolog.Logger) *Group {
	if frames == nil {
		frames = TimerScheduler{}
	}
	return &Group{
		frames: frames,
		log:    logger.With().Str("component", "scrollsync").Logger(),
	}
}

// Add registers a member.
func (g *Group) Add(s Scroller) {
	g.mu.Lock()
	g.members = append(g.members, s)
	g.mu.Unlock()
}

// Bind adds regions and wires their scroll hooks to the group.
func (g *Group) Bind(regions ...*layout.ScrollRegion) {
	for _, r := range regions {
		g.Add(r)
		r.OnScroll(func(src *layout.ScrollRegion) { g.OnScroll(src) })
	}
}

// Len returns the number of members.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// Syncing reports whether a propagation frame is pending.
func (g *Group) Syncing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.syncing
}

// OnScroll handles a scroll event from source. The offset is read and
// applied on the next frame, which also releases the guard.
func (g *Group) OnScroll(source Scroller) {
	g.mu.Lock()
	if g.syncing {
		g.mu.Unlock()
		return
	}
	g.syncing = true
	g.mu.Unlock()

	g.frames.Schedule(func() {
		top := source.ScrollTop()

		g.mu.Lock()
		targets := make([]Scroller, 0, len(g.members))
		for _, m := range g.members {
			if m != source {
				targets = append(targets, m)
			}
		}
		g.mu.Unlock()

		for _, t := range targets {
			if t.ScrollTop() != top {
				t.SetScrollTop(top)
			}
		}
		g.log.Debug().Float64("scroll_top", top).Int("followers", len(targets)).Msg("scroll synced")

		g.mu.Lock()
		g.syncing = false
		g.mu.Unlock()
	})
}
