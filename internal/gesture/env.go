package gesture

import (
	"time"

	"github.com/rs/zerolog"

	"barberpanel/internal/layout"
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

// Thresholds tune pointer handling.
type Thresholds struct {
	JitterPx      float64       // max displacement still treated as a click
	EdgePx        float64       // auto-scroll band at the viewport top and bottom
	ScrollStepPx  float64       // pixels scrolled per auto-scroll frame
	FrameInterval time.Duration // 0 disables the ticker, frames are stepped manually
}

// DefaultThresholds returns 5px jitter, a 60px edge band and ~60 frames per second.
func DefaultThresholds() Thresholds {
	return Thresholds{
		JitterPx:      5,
		EdgePx:        60,
		ScrollStepPx:  12,
		FrameInterval: 16 * time.Millisecond,
	}
}

// Env is everything a gesture needs to know about the rendered agenda.
type Env struct {
	Grid             layout.Grid
	Day              timewindow.Day
	DayStartMinutes  int
	TimelineHeightPx float64
	Windows          timewindow.StaffWindowsMap
	Lanes            LaneResolver
	Viewport         Viewport
	Protected        []model.BookingStatus
	Thresholds       Thresholds
	Logger           zerolog.Logger
}

func (e Env) protected() []model.BookingStatus {
	if e.Protected == nil {
		return model.DefaultProtectedStatuses
	}
	return e.Protected
}

func (e Env) scrollTop() float64 {
	if e.Viewport == nil {
		return 0
	}
	return e.Viewport.ScrollTop()
}

// clampTop keeps a block top inside [0, timeline - one slot].
func (e Env) clampTop(top float64) float64 {
	if top < 0 {
		return 0
	}
	if e.TimelineHeightPx > 0 {
		if limit := e.TimelineHeightPx - e.Grid.SlotHeight(); top > limit {
			return limit
		}
	}
	return top
}

// Controller is an active pointer gesture.
type Controller interface {
	Kind() Kind
	BookingID() string
	Move(p layout.Point)
	Release() Result
	Cancel() Result
}
