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

// ResizeState is the snapshot of an active resize.
type ResizeState struct {
	GestureID         string
	BookingID         string
	Booking           model.Booking
	Edge              Edge
	OriginStart       int
	OriginEnd         int
	OriginTopPx       float64
	OriginHeightPx    float64
	InitialScrollTop  float64
	StartPointer      layout.Point
	LastPointer       layout.Point
	RawDeltaY         float64
	CandidateStart    int
	CandidateEnd      int
	CandidateTopPx    float64
	CandidateHeightPx float64
}

// Resize moves one edge of a booking while the other stays anchored.
type Resize struct {
	mu       sync.Mutex
	env      Env
	machine  *Machine
	state    *ResizeState
	scroller *AutoScroller
	log      zerolog.Logger
}

// StartResize enters the resizing state for the given edge of b.
func StartResize(env Env, b model.Booking, edge Edge, p layout.Point) (*Resize, error) {
	if b.IsProtected(env.protected()) {
		return nil, fmt.Errorf("%w: %s is %s", ErrProtectedBooking, b.ID, b.Status)
	}
	if !b.EndsAt.After(b.StartsAt) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBooking, b.ID)
	}
	if edge != EdgeStart {
		edge = EdgeEnd
	}

	start := env.Day.MinuteOf(b.StartsAt)
	end := start + b.DurationMinutes()
	top := env.Grid.MinutesToPixels(start, env.DayStartMinutes)
	height := env.Grid.BlockHeight(end - start)

	r := &Resize{
		env:     env,
		machine: NewMachine(),
		state: &ResizeState{
			GestureID:         uuid.NewString(),
			BookingID:         b.ID,
			Booking:           b,
			Edge:              edge,
			OriginStart:       start,
			OriginEnd:         end,
			OriginTopPx:       top,
			OriginHeightPx:    height,
			InitialScrollTop:  env.scrollTop(),
			StartPointer:      p,
			LastPointer:       p,
			CandidateStart:    start,
			CandidateEnd:      end,
			CandidateTopPx:    top,
			CandidateHeightPx: height,
		},
	}
	r.machine.Transition(StateResizing)
	r.log = env.Logger.With().
		Str("component", "resize").
		Str("gesture_id", r.state.GestureID).
		Str("booking_id", b.ID).
		Str("edge", string(edge)).
		Logger()
	r.scroller = NewAutoScroller(env.Viewport, env.Thresholds, r.refresh)

	r.log.Debug().Int("start", start).Int("end", end).Msg("resize started")
	return r, nil
}

func (r *Resize) Kind() Kind { return KindResize }

func (r *Resize) BookingID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return ""
	}
	return r.state.BookingID
}

// State returns a copy of the current resize state.
func (r *Resize) State() (ResizeState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return ResizeState{}, false
	}
	return *r.state, true
}

// Scroller exposes the auto-scroll loop.
func (r *Resize) Scroller() *AutoScroller {
	return r.scroller
}

// Move updates the candidate edge for pointer p.
func (r *Resize) Move(p layout.Point) {
	r.mu.Lock()
	if r.state == nil {
		r.mu.Unlock()
		return
	}
	r.state.LastPointer = p
	r.recompute()
	r.mu.Unlock()

	r.scroller.Update(p.Y)
}

func (r *Resize) refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return
	}
	r.recompute()
}

func (r *Resize) recompute() {
	s := r.state
	slot := r.env.Grid.Slot()
	s.RawDeltaY = (s.LastPointer.Y - s.StartPointer.Y) + (r.env.scrollTop() - s.InitialScrollTop)
	delta := r.env.Grid.PixelsToSlots(s.RawDeltaY) * slot

	start, end := s.OriginStart, s.OriginEnd
	if s.Edge == EdgeEnd {
		end = max(s.OriginEnd+delta, start+slot)
	} else {
		start = min(s.OriginStart+delta, end-slot)
	}

	lo, hi, reason := ResizeBounds(r.env.Windows, s.Booking.StaffID, s.Edge, s.OriginStart, s.OriginEnd, slot)
	if reason == ReasonNone {
		if s.Edge == EdgeEnd {
			end = clamp(end, lo, hi)
		} else {
			start = clamp(start, lo, hi)
		}
	}

	s.CandidateStart, s.CandidateEnd = start, end
	s.CandidateTopPx = r.env.clampTop(r.env.Grid.MinutesToPixels(start, r.env.DayStartMinutes))
	s.CandidateHeightPx = r.env.Grid.BlockHeight(end - start)
}

// Release ends the resize and returns the proposed new range.
func (r *Resize) Release() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == nil {
		return Result{Kind: KindResize, Outcome: OutcomeCancelled, Reason: ReasonFinished}
	}
	r.scroller.Stop()
	s := r.state
	r.state = nil

	res := Result{
		Kind:      KindResize,
		GestureID: s.GestureID,
		BookingID: s.BookingID,
		StaffID:   s.Booking.StaffID,
	}

	if math.Abs(s.RawDeltaY) <= r.env.Thresholds.JitterPx {
		r.machine.Transition(StateIdle)
		res.Outcome = OutcomeClick
		return r.finish(res)
	}

	r.machine.Transition(StateCommitting)
	defer r.machine.Transition(StateIdle)

	slot := r.env.Grid.Slot()
	lo, hi, reason := ResizeBounds(r.env.Windows, s.Booking.StaffID, s.Edge, s.OriginStart, s.OriginEnd, slot)
	if reason != ReasonNone {
		res.Outcome = OutcomeRejected
		res.Reason = reason
		r.log.Debug().
			Str("reason", string(reason)).
			Int("start", s.OriginStart).
			Int("end", s.OriginEnd).
			Msg("resize rejected")
		return r.finish(res)
	}

	res.Outcome = OutcomeCommitted
	res.Start, res.End = s.OriginStart, s.OriginEnd
	if s.Edge == EdgeEnd {
		res.End = clamp(s.CandidateEnd, lo, hi)
	} else {
		res.Start = clamp(s.CandidateStart, lo, hi)
	}
	r.log.Info().Int("start", res.Start).Int("end", res.End).Msg("resize committed")
	return r.finish(res)
}

// Cancel discards the resize without a result.
func (r *Resize) Cancel() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == nil {
		return Result{Kind: KindResize, Outcome: OutcomeCancelled, Reason: ReasonFinished}
	}
	r.scroller.Stop()
	res := Result{
		Kind:      KindResize,
		Outcome:   OutcomeCancelled,
		GestureID: r.state.GestureID,
		BookingID: r.state.BookingID,
		StaffID:   r.state.Booking.StaffID,
	}
	r.state = nil
	r.machine.Transition(StateIdle)
	return r.finish(res)
}

func (r *Resize) finish(res Result) Result {
	metrics.IncGesture(string(res.Kind), string(res.Outcome))
	return res
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
