package gesture

import "barberpanel/internal/timewindow"

// Edge is the booking edge a resize handle moves.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// SnapStart places a booking of duration minutes as close as possible to
// raw inside one of windows. A raw start inside a window that can hold the
// booking is clamped to [w.Start, w.End-duration]. Otherwise the booking
// spills forward to the start of the next window that fits, or back to the
// end of the last window that fits. ok is false when no window can hold it.
func SnapStart(raw, duration int, windows []timewindow.TimeWindow) (start int, ok bool) {
	if duration <= 0 {
		return 0, false
	}

	for _, w := range windows {
		if w.Contains(raw) && w.Fits(duration) {
			return min(max(raw, w.Start), w.End-duration), true
		}
	}

	var (
		last  timewindow.TimeWindow
		found bool
	)
	for _, w := range windows {
		if !w.Fits(duration) {
			continue
		}
		if w.Start > raw {
			return w.Start, true
		}
		last, found = w, true
	}
	if found {
		return last.End - duration, true
	}
	return 0, false
}

// ResizeBounds returns the range the moving edge of staffID's booking may
// take. For EdgeEnd the window holding start limits the end to
// [start+slot, w.End]; for EdgeStart the window holding end limits the start
// to [w.Start, end-slot].
func ResizeBounds(windows timewindow.StaffWindowsMap, staffID string, edge Edge, start, end, slot int) (lo, hi int, reason Reason) {
	switch edge {
	case EdgeEnd:
		w, ok := windows.ContainingStart(staffID, start)
		if !ok {
			return 0, 0, ReasonResizeEndUnanchored
		}
		lo, hi = start+slot, w.End
	default:
		w, ok := windows.ContainingEnd(staffID, end)
		if !ok {
			return 0, 0, ReasonResizeStartUnanchored
		}
		lo, hi = w.Start, end-slot
	}
	if hi < lo {
		return 0, 0, ReasonResizeNoRoom
	}
	return lo, hi, ReasonNone
}
