package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"barberpanel/internal/layout"
)

func TestMachineTransitions(t *testing.T) {
	m := NewMachine()

	tests := []struct {
		name        string
		from        State
		to          State
		shouldAllow bool
	}{
		{"idle to dragging", StateIdle, StateDragging, true},
		{"idle to resizing", StateIdle, StateResizing, true},
		{"dragging to committing", StateDragging, StateCommitting, true},
		{"dragging back to idle", StateDragging, StateIdle, true},
		{"resizing to committing", StateResizing, StateCommitting, true},
		{"committing to idle", StateCommitting, StateIdle, true},
		{"idle to committing", StateIdle, StateCommitting, false},
		{"dragging to resizing", StateDragging, StateResizing, false},
		{"committing to dragging", StateCommitting, StateDragging, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shouldAllow, m.CanTransition(tt.from, tt.to))
		})
	}

	assert.False(t, m.Transition(StateCommitting))
	assert.True(t, m.Transition(StateDragging))
	assert.Equal(t, StateDragging, m.State())
}

func TestColumns(t *testing.T) {
	cols := EvenColumns([]string{"ana", "bia", "caio"}, 60, 120)

	tests := []struct {
		x    float64
		want string
		ok   bool
	}{
		{0, "", false},
		{60, "ana", true},
		{179.9, "ana", true},
		{180, "bia", true},
		{419, "caio", true},
		{420, "", false},
	}
	for _, tt := range tests {
		got, ok := cols.LaneAt(layout.Point{X: tt.x})
		assert.Equal(t, tt.ok, ok, "x=%v", tt.x)
		assert.Equal(t, tt.want, got, "x=%v", tt.x)
	}
}

func TestClickGuard(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	g := NewClickGuard(0)
	g.now = func() time.Time { return now }

	assert.False(t, g.Suppressed())

	g.Arm()
	assert.True(t, g.Suppressed())

	now = now.Add(99 * time.Millisecond)
	assert.True(t, g.Suppressed())

	now = now.Add(time.Millisecond)
	assert.False(t, g.Suppressed())
}
