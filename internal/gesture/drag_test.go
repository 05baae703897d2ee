package gesture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberpanel/internal/layout"
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

func TestDrag_CommitsExactStartWhenItFits(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)

	st, ok := d.State()
	require.True(t, ok)
	assert.Equal(t, 240.0, st.OriginTopPx)

	// 220px at 10px per 5 minutes lands the raw start on 11:50.
	d.Move(layout.Point{X: 50, Y: 520})
	res := d.Release()

	assert.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, "s1", res.StaffID)
	assert.Equal(t, 11*60+50, res.Start)
	assert.Equal(t, 12*60+20, res.End)
}

func TestDrag_ClampsIntoWindow(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 720}, {Start: 780, End: 1020}}})
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)

	d.Move(layout.Point{X: 50, Y: 520})
	res := d.Release()

	require.True(t, res.Committed())
	assert.Equal(t, 11*60+30, res.Start)
	assert.Equal(t, 12*60, res.End)
}

func TestDrag_AcrossLanes(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{
		"s1": {{Start: 540, End: 1020}},
		"s2": {{Start: 600, End: 900}},
	})
	b := booking("b1", "s1", 10, 0, 30, model.StatusHold)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)

	d.Move(layout.Point{X: 150, Y: 300})
	st, _ := d.State()
	assert.Equal(t, "s2", st.CandidateStaffID)

	res := d.Release()
	require.True(t, res.Committed())
	assert.Equal(t, "s2", res.StaffID)
	assert.Equal(t, 600, res.Start)
}

func TestDrag_RejectedWithoutWindow(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)

	d.Move(layout.Point{X: 150, Y: 400})
	res := d.Release()

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, ReasonNoWindow, res.Reason)
	assert.False(t, res.Committed())

	_, active := d.State()
	assert.False(t, active)
}

func TestDrag_JitterIsClick(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	for _, dy := range []float64{0, 3, -5, 5} {
		d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
		require.NoError(t, err)

		d.Move(layout.Point{X: 55, Y: 300 + dy})
		res := d.Release()
		assert.Equal(t, OutcomeClick, res.Outcome, "dy=%v", dy)
	}
}

func TestDrag_LaneFallsBackToOrigin(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)

	d.Move(layout.Point{X: 900, Y: 360})
	st, _ := d.State()
	assert.Equal(t, "s1", st.CandidateStaffID)

	res := d.Release()
	require.True(t, res.Committed())
	assert.Equal(t, "s1", res.StaffID)
	assert.Equal(t, 10*60+30, res.Start)
}

func TestDrag_CandidateClampedToTimeline(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)

	d.Move(layout.Point{X: 50, Y: -5000})
	st, _ := d.State()
	assert.Equal(t, 0.0, st.CandidateTopPx)

	d.Move(layout.Point{X: 50, Y: 50000})
	st, _ = d.State()
	assert.Equal(t, env.TimelineHeightPx-env.Grid.SlotHeight(), st.CandidateTopPx)

	// Spills back to the end of the only window.
	res := d.Release()
	require.True(t, res.Committed())
	assert.Equal(t, 990, res.Start)
}

func TestDrag_ProtectedStatuses(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})

	for _, st := range []model.BookingStatus{model.StatusPaid, model.StatusCompleted} {
		_, err := StartDrag(env, booking("b1", "s1", 10, 0, 30, st), layout.Point{})
		assert.True(t, errors.Is(err, ErrProtectedBooking), "status %s", st)
	}

	env.Protected = []model.BookingStatus{model.StatusHold}
	_, err := StartDrag(env, booking("b1", "s1", 10, 0, 30, model.StatusPaid), layout.Point{})
	assert.NoError(t, err)
}

func TestDrag_CancelAndDoubleRelease(t *testing.T) {
	env := testEnv(t, timewindow.StaffWindowsMap{"s1": {{Start: 540, End: 1020}}})
	b := booking("b1", "s1", 10, 0, 30, model.StatusPending)

	d, err := StartDrag(env, b, layout.Point{X: 50, Y: 300})
	require.NoError(t, err)
	d.Move(layout.Point{X: 50, Y: 400})

	res := d.Cancel()
	assert.Equal(t, OutcomeCancelled, res.Outcome)
	assert.Equal(t, "b1", res.BookingID)

	res = d.Release()
	assert.Equal(t, OutcomeCancelled, res.Outcome)
	assert.Equal(t, ReasonFinished, res.Reason)
	assert.Equal(t, StateIdle, d.machine.State())
}
