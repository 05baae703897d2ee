package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tw "barberpanel/internal/timewindow"
)

func TestFindFreeGaps(t *testing.T) {
	day := tw.TimeWindow{Start: 540, End: 1020}

	tests := []struct {
		name     string
		occupied []tw.TimeWindow
		minGap   int
		expected []Gap
	}{
		{
			name:     "empty day is one gap",
			occupied: nil,
			expected: []Gap{{Start: 540, End: 1020}},
		},
		{
			name:     "fully booked edge to edge",
			occupied: []tw.TimeWindow{{Start: 540, End: 720}, {Start: 720, End: 900}, {Start: 900, End: 1020}},
			expected: nil,
		},
		{
			name:     "unsorted with gaps before between after",
			occupied: []tw.TimeWindow{{Start: 780, End: 840}, {Start: 600, End: 660}},
			expected: []Gap{{Start: 540, End: 600}, {Start: 660, End: 780}, {Start: 840, End: 1020}},
		},
		{
			name:     "short gaps dropped",
			occupied: []tw.TimeWindow{{Start: 560, End: 700}, {Start: 720, End: 1000}},
			expected: nil,
		},
		{
			name:     "overlapping occupied merged",
			occupied: []tw.TimeWindow{{Start: 600, End: 800}, {Start: 650, End: 700}, {Start: 790, End: 840}},
			expected: []Gap{{Start: 540, End: 600}, {Start: 840, End: 1020}},
		},
		{
			name:     "occupied outside day clipped",
			occupied: []tw.TimeWindow{{Start: 400, End: 600}, {Start: 1000, End: 1200}},
			expected: []Gap{{Start: 600, End: 1000}},
		},
		{
			name:     "custom minimum",
			occupied: []tw.TimeWindow{{Start: 555, End: 1020}},
			minGap:   15,
			expected: []Gap{{Start: 540, End: 555}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindFreeGaps(day, tt.occupied, tt.minGap)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFindFreeGaps_ShortDay(t *testing.T) {
	assert.Nil(t, FindFreeGaps(tw.TimeWindow{Start: 540, End: 560}, nil, MinGapMinutes))
	assert.Nil(t, FindFreeGaps(tw.TimeWindow{Start: 600, End: 540}, nil, MinGapMinutes))
}

func TestGap_Label(t *testing.T) {
	assert.Equal(t, "10:00-11:30 (1h 30m)", Gap{Start: 600, End: 690}.Label())
	assert.Equal(t, 90, Gap{Start: 600, End: 690}.Duration())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "2h", FormatDuration(120))
	assert.Equal(t, "1h 15m", FormatDuration(75))
}
