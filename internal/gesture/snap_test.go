package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"barberpanel/internal/timewindow"
)

func TestSnapStart(t *testing.T) {
	windows := []timewindow.TimeWindow{{Start: 540, End: 720}, {Start: 780, End: 1020}}

	tests := []struct {
		name     string
		raw      int
		duration int
		want     int
		ok       bool
	}{
		{"inside and fits", 600, 30, 600, true},
		{"clamped to window end", 710, 30, 690, true},
		{"before first window", 480, 30, 540, true},
		{"in gap spills forward", 740, 60, 780, true},
		{"after last window spills back", 1030, 60, 960, true},
		{"too long for the morning window", 600, 200, 780, true},
		{"too long for any window", 600, 300, 0, false},
		{"zero duration", 600, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SnapStart(tt.raw, tt.duration, windows)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapStart_NoWindows(t *testing.T) {
	_, ok := SnapStart(600, 30, nil)
	assert.False(t, ok)
}

func TestResizeBounds(t *testing.T) {
	windows := timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 720}, {Start: 780, End: 1020}}}

	tests := []struct {
		name   string
		edge   Edge
		start  int
		end    int
		lo, hi int
		reason Reason
	}{
		{"end edge limited by window of start", EdgeEnd, 600, 630, 615, 720, ReasonNone},
		{"start edge limited by window of end", EdgeStart, 800, 830, 780, 815, ReasonNone},
		{"end exactly at window end is anchored", EdgeStart, 690, 720, 540, 705, ReasonNone},
		{"start outside windows", EdgeEnd, 730, 760, 0, 0, ReasonResizeEndUnanchored},
		{"end outside windows", EdgeStart, 730, 760, 0, 0, ReasonResizeStartUnanchored},
		{"no room for one slot", EdgeEnd, 710, 720, 0, 0, ReasonResizeNoRoom},
	}

	_, _, reason := ResizeBounds(windows, "s2", EdgeEnd, 600, 630, 15)
	assert.Equal(t, ReasonResizeEndUnanchored, reason, "unknown staff has no windows")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, reason := ResizeBounds(windows, "s1", tt.edge, tt.start, tt.end, 15)
			assert.Equal(t, tt.reason, reason)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestProposeMove(t *testing.T) {
	windows := timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 720}}}

	res := ProposeMove(windows, "b1", "s1", 710, 30)
	assert.True(t, res.Committed())
	assert.Equal(t, 690, res.Start)
	assert.Equal(t, 720, res.End)

	res = ProposeMove(windows, "b1", "s2", 710, 30)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, ReasonNoWindow, res.Reason)
}

func TestProposeResize(t *testing.T) {
	windows := timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 720}}}

	res := ProposeResize(windows, "b1", "s1", EdgeEnd, 600, 630, 900, 15)
	assert.True(t, res.Committed())
	assert.Equal(t, 600, res.Start)
	assert.Equal(t, 720, res.End)

	res = ProposeResize(windows, "b1", "s1", EdgeStart, 600, 630, 300, 15)
	assert.Equal(t, 540, res.Start)
	assert.Equal(t, 630, res.End)

	res = ProposeResize(windows, "b1", "s1", EdgeStart, 700, 760, 600, 15)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, ReasonResizeStartUnanchored, res.Reason)
}
