package gesture

import (
	"barberpanel/internal/metrics"
	"barberpanel/internal/timewindow"
)

// ProposeMove applies the drag commit rules to an explicit target without a
// pointer gesture: the booking of duration minutes lands as close to
// rawStart as the staff's windows allow.
func ProposeMove(windows timewindow.StaffWindowsMap, bookingID, staffID string, rawStart, duration int) Result {
	res := Result{Kind: KindDrag, BookingID: bookingID, StaffID: staffID}
	start, ok := SnapStart(rawStart, duration, windows.For(staffID))
	if !ok {
		res.Outcome = OutcomeRejected
		res.Reason = ReasonNoWindow
	} else {
		res.Outcome = OutcomeCommitted
		res.Start, res.End = start, start+duration
	}
	metrics.IncGesture(string(res.Kind), string(res.Outcome))
	return res
}

// ProposeResize moves one edge of [start, end) to target, clamped by the
// resize commit rules.
func ProposeResize(windows timewindow.StaffWindowsMap, bookingID, staffID string, edge Edge, start, end, target, slot int) Result {
	res := Result{Kind: KindResize, BookingID: bookingID, StaffID: staffID}
	lo, hi, reason := ResizeBounds(windows, staffID, edge, start, end, slot)
	if reason != ReasonNone {
		res.Outcome = OutcomeRejected
		res.Reason = reason
		metrics.IncGesture(string(res.Kind), string(res.Outcome))
		return res
	}

	res.Outcome = OutcomeCommitted
	res.Start, res.End = start, end
	if edge == EdgeStart {
		res.Start = clamp(target, lo, hi)
	} else {
		res.End = clamp(target, lo, hi)
	}
	metrics.IncGesture(string(res.Kind), string(res.Outcome))
	return res
}
