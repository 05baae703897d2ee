package gesture

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"barberpanel/internal/layout"
	"barberpanel/internal/metrics"
	"barberpanel/internal/model"
)

// DragState is the snapshot of an active drag.
type DragState struct {
	GestureID        string
	BookingID        string
	Booking          model.Booking
	OriginStaffID    string
	OriginTopPx      float64
	InitialScrollTop float64
	StartPointer     layout.Point
	LastPointer      layout.Point
	RawDeltaY        float64
	CandidateTopPx   float64
	CandidateStaffID string
}

// Drag moves a booking in time and across staff lanes.
type Drag struct {
	mu       sync.Mutex
	env      Env
	machine  *Machine
	state    *DragState
	scroller *AutoScroller
	log      zerolog.Logger
}

// StartDrag enters the dragging state for b at pointer p.
func StartDrag(env Env, b model.Booking, p layout.Point) (*Drag, error) {
	if b.IsProtected(env.protected()) {
		return nil, fmt.Errorf("%w: %s is %s", ErrProtectedBooking, b.ID, b.Status)
	}
	if !b.EndsAt.After(b.StartsAt) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBooking, b.ID)
	}

	scroll := env.scrollTop()
	originTop := env.Grid.MinutesToPixels(env.Day.MinuteOf(b.StartsAt), env.DayStartMinutes)

	d := &Drag{
		env:     env,
		machine: NewMachine(),
		state: &DragState{
			GestureID:        uuid.NewString(),
			BookingID:        b.ID,
			Booking:          b,
			OriginStaffID:    b.StaffID,
			OriginTopPx:      originTop,
			InitialScrollTop: scroll,
			StartPointer:     p,
			LastPointer:      p,
			CandidateTopPx:   originTop,
			CandidateStaffID: b.StaffID,
		},
	}
	d.machine.Transition(StateDragging)
	d.log = env.Logger.With().
		Str("component", "drag").
		Str("gesture_id", d.state.GestureID).
		Str("booking_id", b.ID).
		Logger()
	d.scroller = NewAutoScroller(env.Viewport, env.Thresholds, d.refresh)

	d.log.Debug().Float64("origin_top", originTop).Msg("drag started")
	return d, nil
}

func (d *Drag) Kind() Kind { return KindDrag }

func (d *Drag) BookingID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == nil {
		return ""
	}
	return d.state.BookingID
}

// State returns a copy of the current drag state.
func (d *Drag) State() (DragState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == nil {
		return DragState{}, false
	}
	return *d.state, true
}

// Scroller exposes the auto-scroll loop, mainly for manual frame stepping.
func (d *Drag) Scroller() *AutoScroller {
	return d.scroller
}

// Move updates the candidate lane and top for pointer p.
func (d *Drag) Move(p layout.Point) {
	d.mu.Lock()
	if d.state == nil {
		d.mu.Unlock()
		return
	}
	d.state.LastPointer = p
	d.recompute()
	d.mu.Unlock()

	d.scroller.Update(p.Y)
}

// refresh re-derives the candidate after an auto-scroll frame.
func (d *Drag) refresh() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == nil {
		return
	}
	d.recompute()
}

func (d *Drag) recompute() {
	s := d.state
	if d.env.Lanes != nil {
		if staffID, ok := d.env.Lanes.LaneAt(s.LastPointer); ok {
			s.CandidateStaffID = staffID
		} else {
			s.CandidateStaffID = s.OriginStaffID
		}
	}
	s.RawDeltaY = (s.LastPointer.Y - s.StartPointer.Y) + (d.env.scrollTop() - s.InitialScrollTop)
	s.CandidateTopPx = d.env.clampTop(d.env.Grid.SnapPixels(s.OriginTopPx + s.RawDeltaY))
}

// Release ends the drag and returns what should happen to the booking.
func (d *Drag) Release() Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == nil {
		return Result{Kind: KindDrag, Outcome: OutcomeCancelled, Reason: ReasonFinished}
	}
	d.scroller.Stop()
	s := d.state
	d.state = nil

	res := Result{
		Kind:      KindDrag,
		GestureID: s.GestureID,
		BookingID: s.BookingID,
		StaffID:   s.CandidateStaffID,
	}

	if s.CandidateStaffID == s.OriginStaffID && math.Abs(s.RawDeltaY) <= d.env.Thresholds.JitterPx {
		d.machine.Transition(StateIdle)
		res.Outcome = OutcomeClick
		return d.finish(res)
	}

	d.machine.Transition(StateCommitting)
	defer d.machine.Transition(StateIdle)

	duration := s.Booking.DurationMinutes()
	raw := d.env.Grid.PixelsToMinutes(s.CandidateTopPx, d.env.DayStartMinutes)
	start, ok := SnapStart(raw, duration, d.env.Windows.For(s.CandidateStaffID))
	if !ok {
		res.Outcome = OutcomeRejected
		res.Reason = ReasonNoWindow
		d.log.Debug().
			Str("staff_id", s.CandidateStaffID).
			Int("raw_start", raw).
			Int("duration", duration).
			Msg("drag rejected, no window fits")
		return d.finish(res)
	}

	res.Outcome = OutcomeCommitted
	res.Start = start
	res.End = start + duration
	d.log.Info().
		Str("staff_id", res.StaffID).
		Int("raw_start", raw).
		Int("start", res.Start).
		Int("end", res.End).
		Msg("drag committed")
	return d.finish(res)
}

// Cancel discards the drag without a result.
func (d *Drag) Cancel() Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == nil {
		return Result{Kind: KindDrag, Outcome: OutcomeCancelled, Reason: ReasonFinished}
	}
	d.scroller.Stop()
	res := Result{
		Kind:      KindDrag,
		Outcome:   OutcomeCancelled,
		GestureID: d.state.GestureID,
		BookingID: d.state.BookingID,
		StaffID:   d.state.OriginStaffID,
	}
	d.state = nil
	d.machine.Transition(StateIdle)
	return d.finish(res)
}

func (d *Drag) finish(res Result) Result {
	metrics.IncGesture(string(res.Kind), string(res.Outcome))
	return res
}
