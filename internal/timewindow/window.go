// Package timewindow implements minute-of-day interval arithmetic used to
// derive staff availability from schedules and blockings.
package timewindow

import (
	"fmt"
	"sort"
)

// MinutesPerDay is the length of a wall-clock day.
const MinutesPerDay = 24 * 60

// TimeWindow is a half-open [Start, End) range of minutes from local midnight.
type TimeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Duration returns the window length in minutes.
func (w TimeWindow) Duration() int {
	return w.End - w.Start
}

// Valid reports whether the window is non-empty.
func (w TimeWindow) Valid() bool {
	return w.End > w.Start
}

// Contains reports whether minute m is inside [Start, End).
func (w TimeWindow) Contains(m int) bool {
	return m >= w.Start && m < w.End
}

// ContainsEnd reports whether an end boundary m lies inside (Start, End].
func (w TimeWindow) ContainsEnd(m int) bool {
	return m > w.Start && m <= w.End
}

// Fits reports whether a duration of d minutes fits in the window.
func (w TimeWindow) Fits(d int) bool {
	return w.Duration() >= d
}

// Overlaps reports whether two windows share at least one minute.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start < other.End && other.Start < w.End
}

// Clip intersects the window with bounds.
func (w TimeWindow) Clip(bounds TimeWindow) TimeWindow {
	if w.Start < bounds.Start {
		w.Start = bounds.Start
	}
	if w.End > bounds.End {
		w.End = bounds.End
	}
	return w
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s-%s", FormatClock(w.Start), FormatClock(w.End))
}

// Subtract removes every block from base and returns the remaining windows in
// ascending order. Blocks may be unsorted and overlap each other.
func Subtract(base TimeWindow, blocks []TimeWindow) []TimeWindow {
	if !base.Valid() {
		return nil
	}

	sorted := append([]TimeWindow(nil), blocks...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	result := []TimeWindow{base}
	for _, block := range sorted {
		if !block.Valid() {
			continue
		}
		next := make([]TimeWindow, 0, len(result)+1)
		for _, w := range result {
			if !w.Overlaps(block) {
				next = append(next, w)
				continue
			}
			if block.Start > w.Start {
				next = append(next, TimeWindow{Start: w.Start, End: block.Start})
			}
			if block.End < w.End {
				next = append(next, TimeWindow{Start: block.End, End: w.End})
			}
		}
		result = next
	}
	return result
}

// Normalize sorts windows and merges the ones that overlap or touch.
func Normalize(windows []TimeWindow) []TimeWindow {
	valid := make([]TimeWindow, 0, len(windows))
	for _, w := range windows {
		if w.Valid() {
			valid = append(valid, w)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start < valid[j].Start })

	merged := []TimeWindow{valid[0]}
	for _, w := range valid[1:] {
		last := &merged[len(merged)-1]
		if w.Start <= last.End {
			if w.End > last.End {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}
