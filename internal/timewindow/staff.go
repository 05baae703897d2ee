package timewindow

import (
	"fmt"

	"barberpanel/internal/model"
)

// StaffWindowsMap maps staff id to its ascending, disjoint availability windows.
type StaffWindowsMap map[string][]TimeWindow

// For returns the windows of a staff member.
func (m StaffWindowsMap) For(staffID string) []TimeWindow {
	return m[staffID]
}

// ContainingStart returns the window in which minute is a valid start.
func (m StaffWindowsMap) ContainingStart(staffID string, minute int) (TimeWindow, bool) {
	for _, w := range m[staffID] {
		if w.Contains(minute) {
			return w, true
		}
	}
	return TimeWindow{}, false
}

// ContainingEnd returns the window in which minute is a valid end.
func (m StaffWindowsMap) ContainingEnd(staffID string, minute int) (TimeWindow, bool) {
	for _, w := range m[staffID] {
		if w.ContainsEnd(minute) {
			return w, true
		}
	}
	return TimeWindow{}, false
}

// Bounds returns the union envelope of every window.
func (m StaffWindowsMap) Bounds() (TimeWindow, bool) {
	var (
		bounds TimeWindow
		found  bool
	)
	for _, windows := range m {
		for _, w := range windows {
			if !found {
				bounds, found = w, true
				continue
			}
			if w.Start < bounds.Start {
				bounds.Start = w.Start
			}
			if w.End > bounds.End {
				bounds.End = w.End
			}
		}
	}
	return bounds, found
}

// Diagnostic describes a schedule entry that could not produce windows.
type Diagnostic struct {
	StaffID string
	Reason  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("staff %s: %s", d.StaffID, d.Reason)
}

// ScheduleWindow parses a schedule entry into its base window.
// ok is false when end <= start, which means the staff does not work that day.
func ScheduleWindow(s model.StaffSchedule) (w TimeWindow, ok bool, err error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return TimeWindow{}, false, fmt.Errorf("parse start time: %w", err)
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return TimeWindow{}, false, fmt.Errorf("parse end time: %w", err)
	}
	w = TimeWindow{Start: start, End: end}
	return w, w.Valid(), nil
}

// AppliesTo reports whether a schedule entry is for the given day.
// Weekday 0 means the entry applies to every day.
func AppliesTo(s model.StaffSchedule, day Day) bool {
	return s.Weekday == 0 || s.Weekday == day.Weekday()
}

// BlockingWindow converts a blocking to local minutes of day, flooring the
// start and rounding the end up so partial minutes stay blocked. ok is false
// when the blocking does not touch the day.
func BlockingWindow(b model.StaffBlocking, day Day) (TimeWindow, bool) {
	if !b.EndAt.After(b.StartAt) || !day.Overlaps(b.StartAt, b.EndAt) {
		return TimeWindow{}, false
	}
	w := TimeWindow{Start: day.MinuteOf(b.StartAt), End: day.MinuteCeilOf(b.EndAt)}
	return w, w.Valid()
}

// BuildStaffWindowsForDay derives availability per staff member: each schedule
// base window minus the staff's blockings on the day. Staff whose schedule
// ends before it starts get an empty list.
func BuildStaffWindowsForDay(
	schedules []model.StaffSchedule,
	blockings []model.StaffBlocking,
	day Day,
) (StaffWindowsMap, []Diagnostic) {
	blocksByStaff := make(map[string][]TimeWindow)
	for _, b := range blockings {
		if w, ok := BlockingWindow(b, day); ok {
			blocksByStaff[b.StaffID] = append(blocksByStaff[b.StaffID], w)
		}
	}

	result := make(StaffWindowsMap)
	var diags []Diagnostic
	for _, s := range schedules {
		if !AppliesTo(s, day) {
			continue
		}
		if _, seen := result[s.StaffID]; !seen {
			result[s.StaffID] = []TimeWindow{}
		}

		base, ok, err := ScheduleWindow(s)
		if err != nil {
			diags = append(diags, Diagnostic{StaffID: s.StaffID, Reason: err.Error()})
			continue
		}
		if !ok {
			continue
		}

		windows := Subtract(base, blocksByStaff[s.StaffID])
		result[s.StaffID] = Normalize(append(result[s.StaffID], windows...))
		if result[s.StaffID] == nil {
			result[s.StaffID] = []TimeWindow{}
		}
	}
	return result, diags
}
