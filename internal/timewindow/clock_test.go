package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"9:30", 570, false},
		{"17:45:00", 1065, false},
		{"00:00", 0, false},
		{"24:00", 1440, false},
		{"24:30", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "24:00", FormatClock(1440))
	assert.Equal(t, FallbackClock, FormatClock(-15))
	assert.Equal(t, FallbackClock, FormatClock(5000))
}

func TestParseDay(t *testing.T) {
	_, err := ParseDay("2026-13-01", "UTC")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDay("2026-01-01", "Mars/Olympus")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	day, err := ParseDay("2026-03-15", "Europe/Lisbon")
	require.NoError(t, err)
	assert.Equal(t, 7, day.Weekday())

	at := day.At(11*60 + 50)
	assert.Equal(t, 11, at.Hour())
	assert.Equal(t, 50, at.Minute())
	assert.Equal(t, 15, at.Day())
	assert.Equal(t, MinutesPerDay, day.MinuteOf(day.End().Add(time.Hour)))
	assert.Equal(t, 0, day.MinuteOf(day.Start().Add(-time.Hour)))
	assert.Equal(t, 710, day.MinuteOf(at))
}

func TestDay_MinuteCeilOf(t *testing.T) {
	day := mustDay(t, "2026-03-10", "America/Sao_Paulo")
	at := func(h, m, sec int) time.Time { return time.Date(2026, 3, 10, h, m, sec, 0, day.Location) }

	assert.Equal(t, 779, day.MinuteOf(at(12, 59, 59)))
	assert.Equal(t, 780, day.MinuteCeilOf(at(12, 59, 59)))
	assert.Equal(t, 780, day.MinuteCeilOf(at(13, 0, 0)))
	assert.Equal(t, 1, day.MinuteCeilOf(at(0, 0, 1)))
	assert.Equal(t, 0, day.MinuteCeilOf(at(0, 0, 0)))
	assert.Equal(t, 1440, day.MinuteCeilOf(at(23, 59, 30)))
	assert.Equal(t, 1440, day.MinuteCeilOf(day.End().Add(time.Hour)))
}
