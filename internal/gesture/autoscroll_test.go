package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberpanel/internal/layout"
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

func TestAutoScroller_Direction(t *testing.T) {
	vp := layout.NewScrollRegion("s1", layout.Rect{Top: 100, Bottom: 600}, 2000)
	a := NewAutoScroller(vp, Thresholds{EdgePx: 60, ScrollStepPx: 12}, nil)

	a.Update(120)
	assert.Equal(t, -1, a.Direction())
	a.Update(580)
	assert.Equal(t, 1, a.Direction())
	a.Update(300)
	assert.Equal(t, 0, a.Direction())
	assert.False(t, a.Step())
}

func TestAutoScroller_BoundedByMaxScroll(t *testing.T) {
	vp := layout.NewScrollRegion("s1", layout.Rect{Top: 0, Bottom: 500}, 520)
	frames := 0
	a := NewAutoScroller(vp, Thresholds{EdgePx: 60, ScrollStepPx: 12}, func() { frames++ })

	a.Update(490)
	for i := 0; i < 5; i++ {
		a.Step()
	}
	assert.Equal(t, 20.0, vp.ScrollTop())
	assert.Equal(t, 2, frames)

	a.Update(10)
	for i := 0; i < 5; i++ {
		a.Step()
	}
	assert.Equal(t, 0.0, vp.ScrollTop())
}

func TestAutoScroller_StopEndsLoop(t *testing.T) {
	vp := layout.NewScrollRegion("s1", layout.Rect{Top: 0, Bottom: 500}, 5000)
	a := NewAutoScroller(vp, Thresholds{EdgePx: 60, ScrollStepPx: 10, FrameInterval: time.Millisecond}, nil)

	a.Update(495)
	require.Eventually(t, func() bool { return vp.ScrollTop() >= 30 }, time.Second, time.Millisecond)
	assert.True(t, a.Running())

	a.Stop()
	assert.False(t, a.Running())
	assert.False(t, a.Step())

	// Updates after stop never restart the loop.
	a.Update(495)
	assert.False(t, a.Running())
	assert.Equal(t, 0, a.Direction())
}

func TestAutoScroller_LoopExitsOnNeutral(t *testing.T) {
	vp := layout.NewScrollRegion("s1", layout.Rect{Top: 0, Bottom: 500}, 5000)
	a := NewAutoScroller(vp, Thresholds{EdgePx: 60, ScrollStepPx: 10, FrameInterval: time.Millisecond}, nil)
	defer a.Stop()

	a.Update(495)
	require.Eventually(t, func() bool { return vp.ScrollTop() > 0 }, time.Second, time.Millisecond)

	a.Update(250)
	require.Eventually(t, func() bool { return !a.Running() }, time.Second, time.Millisecond)
}

func TestDrag_AutoScrollRederivesCandidate(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})
	vp := layout.NewScrollRegion("s1", layout.Rect{Top: 0, Bottom: 500}, env.TimelineHeightPx)
	env.Viewport = vp
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)

	d.Move(layout.Point{X: 50, Y: 480})
	assert.Equal(t, 1, d.Scroller().Direction())

	require.True(t, d.Scroller().Step())
	st, _ := d.State()
	assert.Equal(t, 192.0, st.RawDeltaY)
	assert.Equal(t, 430.0, st.CandidateTopPx)

	d.Move(layout.Point{X: 50, Y: 300})
	assert.Equal(t, 0, d.Scroller().Direction())
	st, _ = d.State()
	assert.Equal(t, 12.0, st.RawDeltaY)

	res := d.Release()
	require.True(t, res.Committed())
	assert.Equal(t, 605, res.Start)
	assert.False(t, d.Scroller().Step())
}
