package slots

import (
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

// DayRange is the visible [StartHour, EndHour) span of the agenda.
type DayRange struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// DefaultDayRange is used when no schedule is known.
var DefaultDayRange = DayRange{StartHour: 8, EndHour: 22}

// StartMinutes returns the day start as minutes from midnight.
func (r DayRange) StartMinutes() int {
	return r.StartHour * 60
}

// EndMinutes returns the day end as minutes from midnight.
func (r DayRange) EndMinutes() int {
	return r.EndHour * 60
}

// Window returns the range as a time window.
func (r DayRange) Window() timewindow.TimeWindow {
	return timewindow.TimeWindow{Start: r.StartMinutes(), End: r.EndMinutes()}
}

// DeriveDayRange picks the visible hours from the union of availability
// windows, falling back to the raw schedules and then to fallback.
func DeriveDayRange(windows timewindow.StaffWindowsMap, schedules []model.StaffSchedule, fallback DayRange) DayRange {
	if bounds, ok := windows.Bounds(); ok {
		return fromMinutes(bounds.Start, bounds.End)
	}

	var (
		bounds timewindow.TimeWindow
		found  bool
	)
	for _, s := range schedules {
		w, ok, err := timewindow.ScheduleWindow(s)
		if err != nil || !ok {
			continue
		}
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
	if found {
		return fromMinutes(bounds.Start, bounds.End)
	}

	if fallback.EndHour <= fallback.StartHour {
		return DefaultDayRange
	}
	return fallback
}

func fromMinutes(start, end int) DayRange {
	startHour := clampHour(start / 60)
	endHour := clampHour((end + 59) / 60)
	if endHour <= startHour {
		endHour = min(23, startHour+1)
	}
	return DayRange{StartHour: startHour, EndHour: endHour}
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}
