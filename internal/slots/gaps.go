// Package slots finds bookable free time on a staff day and derives the
// visible hour range of the agenda.
package slots

import (
	"fmt"
	"sort"

	"barberpanel/internal/timewindow"
)

// MinGapMinutes is the default shortest free interval worth showing.
const MinGapMinutes = 30

// Gap is a free interval inside a staff day.
type Gap struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Duration returns the gap length in minutes.
func (g Gap) Duration() int {
	return g.End - g.Start
}

// Window returns the gap as a time window.
func (g Gap) Window() timewindow.TimeWindow {
	return timewindow.TimeWindow{Start: g.Start, End: g.End}
}

// Label renders the gap for UI, e.g. "10:00-11:30 (1h 30m)".
func (g Gap) Label() string {
	return fmt.Sprintf("%s-%s (%s)", timewindow.FormatClock(g.Start), timewindow.FormatClock(g.End), FormatDuration(g.Duration()))
}

// FindFreeGaps returns the maximal free intervals of day not covered by
// occupied that last at least minGap minutes. occupied may be unsorted and
// may overlap.
func FindFreeGaps(day timewindow.TimeWindow, occupied []timewindow.TimeWindow, minGap int) []Gap {
	if !day.Valid() {
		return nil
	}
	if minGap <= 0 {
		minGap = MinGapMinutes
	}

	busy := make([]timewindow.TimeWindow, 0, len(occupied))
	for _, o := range occupied {
		if !o.Overlaps(day) {
			continue
		}
		busy = append(busy, o.Clip(day))
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start < busy[j].Start
	})

	var gaps []Gap
	emit := func(start, end int) {
		if end-start >= minGap {
			gaps = append(gaps, Gap{Start: start, End: end})
		}
	}

	cursor := day.Start
	for _, b := range busy {
		if b.Start > cursor {
			emit(cursor, b.Start)
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	emit(cursor, day.End)

	return gaps
}

// FormatDuration formats minutes as "45m", "1h" or "1h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
