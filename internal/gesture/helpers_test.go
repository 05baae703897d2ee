package gesture

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"barberpanel/internal/layout"
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

// testEnv is an 08:00-22:00 agenda with 5 minute / 10px slots and two lanes
// 100px wide. Frames are stepped manually.
func testEnv(t *testing.T, windows timewindow.StaffWindowsMap) Env {
	t.Helper()
	day, err := timewindow.ParseDay("2026-03-10", "UTC")
	require.NoError(t, err)

	grid := layout.Grid{SlotMinutes: 5, SlotHeightPx: 10, MinBlockHeightPx: 10}
	th := DefaultThresholds()
	th.FrameInterval = 0

	return Env{
		Grid:             grid,
		Day:              day,
		DayStartMinutes:  8 * 60,
		TimelineHeightPx: grid.TimelineHeight(8, 22),
		Windows:          windows,
		Lanes:            EvenColumns([]string{"s1", "s2"}, 0, 100),
		Thresholds:       th,
		Logger:           zerolog.Nop(),
	}
}

func booking(id, staffID string, startHour, startMin, minutes int, status model.BookingStatus) model.Booking {
	start := time.Date(2026, 3, 10, startHour, startMin, 0, 0, time.UTC)
	return model.Booking{
		ID:       id,
		StaffID:  staffID,
		StartsAt: start,
		EndsAt:   start.Add(time.Duration(minutes) * time.Minute),
		Status:   status,
	}
}
