package agenda

import (
	"fmt"
	"math"

	"barberpanel/internal/gesture"
	"barberpanel/internal/layout"
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

// PointerDown starts a drag or resize on a booking block.
func (b *Board) PointerDown(bookingID string, handle Handle, p layout.Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.loaded {
		return ErrNoInput
	}
	if b.active != nil {
		return fmt.Errorf("%w: %s", ErrGestureActive, b.active.BookingID())
	}
	bk, ok := b.bookings[bookingID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBooking, bookingID)
	}

	env := b.envLocked()
	var (
		ctrl gesture.Controller
		err  error
	)
	switch handle {
	case HandleResizeStart:
		ctrl, err = gesture.StartResize(env, bk, gesture.EdgeStart, p)
	case HandleResizeEnd:
		ctrl, err = gesture.StartResize(env, bk, gesture.EdgeEnd, p)
	default:
		ctrl, err = gesture.StartDrag(env, bk, p)
	}
	if err != nil {
		return err
	}
	b.active = ctrl
	return nil
}

// PointerMove feeds the active gesture. Without one it does nothing.
func (b *Board) PointerMove(p layout.Point) {
	b.mu.Lock()
	ctrl := b.active
	b.mu.Unlock()

	if ctrl != nil {
		ctrl.Move(p)
	}
}

// PointerUp finishes the active gesture and fires the matching callback.
// ok is false when no gesture was active.
func (b *Board) PointerUp() (res gesture.Result, ok bool) {
	b.mu.Lock()
	ctrl := b.active
	b.active = nil
	b.mu.Unlock()

	if ctrl == nil {
		return gesture.Result{}, false
	}
	res = ctrl.Release()
	if res.Outcome != gesture.OutcomeClick {
		b.guard.Arm()
	}
	b.dispatch(res)
	return res, true
}

// Cancel discards the active gesture without firing a callback.
func (b *Board) Cancel() bool {
	b.mu.Lock()
	ctrl := b.active
	b.active = nil
	b.mu.Unlock()

	if ctrl == nil {
		return false
	}
	ctrl.Cancel()
	return true
}

// Active returns the running gesture, if any.
func (b *Board) Active() (gesture.Controller, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, b.active != nil
}

// ProposeMove moves a booking to staffID at start minutes using the drag
// commit rules. A committed result also fires OnBookingMove.
func (b *Board) ProposeMove(bookingID, staffID string, start int) (gesture.Result, error) {
	b.mu.Lock()
	bk, err := b.editableLocked(bookingID)
	windows := b.windows
	b.mu.Unlock()
	if err != nil {
		return gesture.Result{}, err
	}

	if staffID == "" {
		staffID = bk.StaffID
	}
	res := gesture.ProposeMove(windows, bk.ID, staffID, start, bk.DurationMinutes())
	b.dispatch(res)
	return res, nil
}

// ProposeResize moves one edge of a booking to target minutes using the
// resize commit rules. A committed result also fires OnBookingResize.
func (b *Board) ProposeResize(bookingID string, edge gesture.Edge, target int) (gesture.Result, error) {
	b.mu.Lock()
	bk, err := b.editableLocked(bookingID)
	windows, day, slot := b.windows, b.day, b.opts.Grid.Slot()
	b.mu.Unlock()
	if err != nil {
		return gesture.Result{}, err
	}

	start := day.MinuteOf(bk.StartsAt)
	end := start + bk.DurationMinutes()
	res := gesture.ProposeResize(windows, bk.ID, bk.StaffID, edge, start, end, target, slot)
	b.dispatch(res)
	return res, nil
}

func (b *Board) editableLocked(bookingID string) (model.Booking, error) {
	if !b.loaded {
		return model.Booking{}, ErrNoInput
	}
	bk, ok := b.bookings[bookingID]
	if !ok {
		return model.Booking{}, fmt.Errorf("%w: %s", ErrUnknownBooking, bookingID)
	}
	protected := b.opts.Protected
	if protected == nil {
		protected = model.DefaultProtectedStatuses
	}
	if bk.IsProtected(protected) {
		return model.Booking{}, fmt.Errorf("%w: %s is %s", gesture.ErrProtectedBooking, bk.ID, bk.Status)
	}
	return bk, nil
}

func (b *Board) dispatch(res gesture.Result) {
	if !res.Committed() {
		return
	}

	b.mu.Lock()
	bk, ok := b.bookings[res.BookingID]
	var startISO, endISO string
	if ok {
		startISO, endISO = b.instant(bk, res.Start), b.instant(bk, res.End)
	}
	b.mu.Unlock()
	if !ok {
		// Input was replaced mid-gesture and the booking is gone.
		b.log.Warn().Str("booking_id", res.BookingID).Msg("dropping commit for unknown booking")
		return
	}

	switch res.Kind {
	case gesture.KindDrag:
		if b.cb.OnBookingMove != nil {
			b.cb.OnBookingMove(res.BookingID, res.StaffID, startISO, endISO)
		}
	case gesture.KindResize:
		if b.cb.OnBookingResize != nil {
			b.cb.OnBookingResize(res.BookingID, startISO, endISO)
		}
	}
}

// ClickBooking opens a booking unless a gesture just ended.
func (b *Board) ClickBooking(bookingID string) bool {
	if b.guard.Suppressed() {
		return false
	}
	if _, ok := b.Booking(bookingID); !ok {
		return false
	}
	if b.cb.OnBookingClick != nil {
		b.cb.OnBookingClick(bookingID)
	}
	return true
}

// SlotClick reports a click on empty space in a staff column at topPx
// timeline pixels. It returns the "HH:mm" of the slot under the pointer.
func (b *Board) SlotClick(staffID string, topPx float64) (string, bool) {
	if b.guard.Suppressed() {
		return "", false
	}

	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return "", false
	}
	grid, dayStart, dayEnd := b.opts.Grid, b.dayRange.StartMinutes(), b.dayRange.EndMinutes()
	b.mu.Unlock()

	if math.IsNaN(topPx) || math.IsInf(topPx, 0) || topPx < 0 {
		topPx = 0
	}
	minute := dayStart + int(math.Floor(topPx/grid.SlotHeight()))*grid.Slot()
	if minute >= dayEnd {
		minute = dayEnd - grid.Slot()
	}
	slot := timewindow.FormatClock(minute)

	if b.cb.OnSlotClick != nil {
		b.cb.OnSlotClick(staffID, slot)
	}
	return slot, true
}

// FreeSlotClick reports a click on the free gap of staffID containing minute.
func (b *Board) FreeSlotClick(staffID string, minute int) (FreeSlot, bool) {
	if b.guard.Suppressed() {
		return FreeSlot{}, false
	}

	b.mu.Lock()
	gaps, date := b.gaps[staffID], b.day.Date
	b.mu.Unlock()

	for _, g := range gaps {
		if !g.Window().Contains(minute) {
			continue
		}
		fs := FreeSlot{
			StaffID: staffID,
			Time:    timewindow.FormatClock(g.Start),
			EndTime: timewindow.FormatClock(g.End),
			Date:    date,
		}
		if b.cb.OnFreeSlotClick != nil {
			b.cb.OnFreeSlotClick(fs)
		}
		return fs, true
	}
	return FreeSlot{}, false
}
