package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"barberpanel/internal/model"
	tw "barberpanel/internal/timewindow"
)

func TestDeriveDayRange(t *testing.T) {
	tests := []struct {
		name      string
		windows   tw.StaffWindowsMap
		schedules []model.StaffSchedule
		want      DayRange
	}{
		{
			name: "union of windows",
			windows: tw.StaffWindowsMap{
				"ana": {{Start: 540, End: 720}, {Start: 780, End: 1020}},
				"bia": {{Start: 450, End: 600}},
			},
			want: DayRange{StartHour: 7, EndHour: 17},
		},
		{
			name:    "ceil partial end hour",
			windows: tw.StaffWindowsMap{"ana": {{Start: 600, End: 1110}}},
			want:    DayRange{StartHour: 10, EndHour: 19},
		},
		{
			name:    "late window clamps to 23",
			windows: tw.StaffWindowsMap{"ana": {{Start: 1380, End: 1440}}},
			want:    DayRange{StartHour: 23, EndHour: 23},
		},
		{
			name:    "empty windows fall back to schedules",
			windows: tw.StaffWindowsMap{"ana": {}},
			schedules: []model.StaffSchedule{
				{StaffID: "ana", StartTime: "10:00", EndTime: "19:30"},
				{StaffID: "bia", StartTime: "08:30", EndTime: "12:00"},
				{StaffID: "off", StartTime: "12:00", EndTime: "08:00"},
			},
			want: DayRange{StartHour: 8, EndHour: 20},
		},
		{
			name: "nothing known uses default",
			want: DefaultDayRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveDayRange(tt.windows, tt.schedules, DefaultDayRange))
		})
	}
}

func TestDeriveDayRange_CustomFallback(t *testing.T) {
	got := DeriveDayRange(nil, nil, DayRange{StartHour: 9, EndHour: 20})
	assert.Equal(t, DayRange{StartHour: 9, EndHour: 20}, got)

	got = DeriveDayRange(nil, nil, DayRange{StartHour: 20, EndHour: 9})
	assert.Equal(t, DefaultDayRange, got)
}

func TestDayRange_Minutes(t *testing.T) {
	r := DayRange{StartHour: 8, EndHour: 22}
	assert.Equal(t, 480, r.StartMinutes())
	assert.Equal(t, 1320, r.EndMinutes())
	assert.Equal(t, tw.TimeWindow{Start: 480, End: 1320}, r.Window())
}
