package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberpanel/internal/model"
)

func mustDay(t *testing.T, date, tz string) Day {
	t.Helper()
	d, err := ParseDay(date, tz)
	require.NoError(t, err)
	return d
}

func TestBuildStaffWindowsForDay_LunchBlocking(t *testing.T) {
	day := mustDay(t, "2026-03-10", "America/Sao_Paulo")
	loc := day.Location

	schedules := []model.StaffSchedule{
		{StaffID: "ana", StartTime: "09:00", EndTime: "17:00"},
	}
	blockings := []model.StaffBlocking{
		{
			StaffID: "ana",
			StartAt: time.Date(2026, 3, 10, 12, 0, 0, 0, loc),
			EndAt:   time.Date(2026, 3, 10, 13, 0, 0, 0, loc),
			Type:    model.BlockingBlock,
		},
	}

	windows, diags := BuildStaffWindowsForDay(schedules, blockings, day)
	require.Empty(t, diags)
	assert.Equal(t, []TimeWindow{{540, 720}, {780, 1020}}, windows.For("ana"))
}

func TestBuildStaffWindowsForDay_BlockingTimezone(t *testing.T) {
	day := mustDay(t, "2026-03-10", "America/Sao_Paulo")

	schedules := []model.StaffSchedule{{StaffID: "ana", StartTime: "09:00", EndTime: "17:00"}}
	// 15:00Z is 12:00 in Sao Paulo (UTC-3).
	blockings := []model.StaffBlocking{{
		StaffID: "ana",
		StartAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC),
	}}

	windows, _ := BuildStaffWindowsForDay(schedules, blockings, day)
	assert.Equal(t, []TimeWindow{{540, 720}, {780, 1020}}, windows.For("ana"))
}

func TestBuildStaffWindowsForDay_PartialMinutesStayBlocked(t *testing.T) {
	day := mustDay(t, "2026-03-10", "America/Sao_Paulo")
	loc := day.Location

	schedules := []model.StaffSchedule{{StaffID: "ana", StartTime: "09:00", EndTime: "17:00"}}
	blockings := []model.StaffBlocking{
		{StaffID: "ana", StartAt: time.Date(2026, 3, 10, 12, 0, 0, 0, loc), EndAt: time.Date(2026, 3, 10, 12, 59, 59, 0, loc)},
		{StaffID: "ana", StartAt: time.Date(2026, 3, 10, 10, 0, 30, 0, loc), EndAt: time.Date(2026, 3, 10, 10, 0, 50, 0, loc)},
	}

	windows, _ := BuildStaffWindowsForDay(schedules, blockings, day)
	assert.Equal(t, []TimeWindow{{540, 600}, {601, 720}, {780, 1020}}, windows.For("ana"))
}

func TestBuildStaffWindowsForDay_OtherDayBlockingIgnored(t *testing.T) {
	day := mustDay(t, "2026-03-10", "UTC")

	schedules := []model.StaffSchedule{{StaffID: "ana", StartTime: "09:00", EndTime: "17:00"}}
	blockings := []model.StaffBlocking{{
		StaffID: "ana",
		StartAt: time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC),
	}}

	windows, _ := BuildStaffWindowsForDay(schedules, blockings, day)
	assert.Equal(t, []TimeWindow{{540, 1020}}, windows.For("ana"))
}

func TestBuildStaffWindowsForDay_VacationAcrossDays(t *testing.T) {
	day := mustDay(t, "2026-03-10", "UTC")

	schedules := []model.StaffSchedule{{StaffID: "ana", StartTime: "09:00", EndTime: "17:00"}}
	blockings := []model.StaffBlocking{{
		StaffID: "ana",
		StartAt: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Type:    model.BlockingVacation,
	}}

	windows, _ := BuildStaffWindowsForDay(schedules, blockings, day)
	assert.Empty(t, windows.For("ana"))
	_, present := windows["ana"]
	assert.True(t, present)
}

func TestBuildStaffWindowsForDay_EdgeCases(t *testing.T) {
	day := mustDay(t, "2026-03-10", "UTC") // Tuesday

	schedules := []model.StaffSchedule{
		{StaffID: "inverted", StartTime: "18:00", EndTime: "09:00"},
		{StaffID: "broken", StartTime: "nine", EndTime: "17:00"},
		{StaffID: "monday-only", Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
		{StaffID: "tuesday", Weekday: 2, StartTime: "10:00", EndTime: "14:00"},
		{StaffID: "split", StartTime: "08:00", EndTime: "11:00"},
		{StaffID: "split", StartTime: "15:00", EndTime: "20:00"},
	}

	windows, diags := BuildStaffWindowsForDay(schedules, nil, day)

	assert.Empty(t, windows.For("inverted"))
	assert.Empty(t, windows.For("broken"))
	_, hasMonday := windows["monday-only"]
	assert.False(t, hasMonday)
	assert.Equal(t, []TimeWindow{{600, 840}}, windows.For("tuesday"))
	assert.Equal(t, []TimeWindow{{480, 660}, {900, 1200}}, windows.For("split"))

	require.Len(t, diags, 1)
	assert.Equal(t, "broken", diags[0].StaffID)
}

func TestStaffWindowsMap_Lookups(t *testing.T) {
	m := StaffWindowsMap{
		"ana": {{540, 720}, {780, 1020}},
		"bia": {{480, 600}},
	}

	w, ok := m.ContainingStart("ana", 720)
	assert.False(t, ok)
	w, ok = m.ContainingStart("ana", 780)
	require.True(t, ok)
	assert.Equal(t, TimeWindow{780, 1020}, w)

	w, ok = m.ContainingEnd("ana", 720)
	require.True(t, ok)
	assert.Equal(t, TimeWindow{540, 720}, w)

	bounds, ok := m.Bounds()
	require.True(t, ok)
	assert.Equal(t, TimeWindow{480, 1020}, bounds)

	_, ok = StaffWindowsMap{}.Bounds()
	assert.False(t, ok)
}
