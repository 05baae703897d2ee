// Package layout maps minutes of day onto the pixel timeline of the agenda.
package layout

import "math"

// Grid describes the timeline resolution.
type Grid struct {
	SlotMinutes      int     // minutes per slot, e.g. 15
	SlotHeightPx     float64 // pixels per slot
	MinBlockHeightPx float64 // floor for very short bookings
}

// DefaultGrid returns a 15 minute / 24px grid.
func DefaultGrid() Grid {
	return Grid{SlotMinutes: 15, SlotHeightPx: 24, MinBlockHeightPx: 24}
}

func (g Grid) slot() int {
	if g.SlotMinutes <= 0 {
		return 15
	}
	return g.SlotMinutes
}

func (g Grid) height() float64 {
	if g.SlotHeightPx <= 0 || math.IsNaN(g.SlotHeightPx) {
		return 24
	}
	return g.SlotHeightPx
}

// Slot returns the effective slot duration in minutes.
func (g Grid) Slot() int { return g.slot() }

// SlotHeight returns the effective slot height in pixels.
func (g Grid) SlotHeight() float64 { return g.height() }

// MinutesToPixels returns the top offset of a minute, rounded to the nearest
// slot boundary and floored at zero.
func (g Grid) MinutesToPixels(minutes, dayStartMinutes int) float64 {
	slots := math.Round(float64(minutes-dayStartMinutes) / float64(g.slot()))
	px := slots * g.height()
	if px < 0 {
		return 0
	}
	return px
}

// PixelsToMinutes is the inverse of MinutesToPixels. Non-finite input maps to
// the day start.
func (g Grid) PixelsToMinutes(px float64, dayStartMinutes int) int {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return dayStartMinutes
	}
	slots := math.Round(math.Max(0, px) / g.height())
	return dayStartMinutes + int(slots)*g.slot()
}

// SnapPixels rounds a pixel offset to the nearest slot boundary.
func (g Grid) SnapPixels(px float64) float64 {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0
	}
	return math.Round(px/g.height()) * g.height()
}

// PixelsToSlots converts a pixel delta to a whole number of slots.
func (g Grid) PixelsToSlots(px float64) int {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0
	}
	return int(math.Round(px / g.height()))
}

// BlockHeight is the rendered height of an item lasting durationMinutes.
func (g Grid) BlockHeight(durationMinutes int) float64 {
	slots := math.Ceil(float64(durationMinutes) / float64(g.slot()))
	return math.Max(g.MinBlockHeightPx, slots*g.height())
}

// TimelineHeight is the full height of the visible day range.
func (g Grid) TimelineHeight(startHour, endHour int) float64 {
	if endHour <= startHour {
		return g.height()
	}
	return float64((endHour-startHour)*60/g.slot()) * g.height()
}
