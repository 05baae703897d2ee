package timewindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClock    = errors.New("invalid clock value")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// FallbackClock is returned by FormatClock for out-of-range minutes.
const FallbackClock = "00:00"

// DateLayout is the selected-date format used across the agenda.
const DateLayout = "2006-01-02"

// ParseClock converts "HH:MM" (optionally "HH:MM:SS") to minutes from midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: hour in %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: minute in %q", ErrInvalidClock, s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidClock, s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(m int) string {
	if m < 0 || m > MinutesPerDay {
		return FallbackClock
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Day is one calendar date in a tenant timezone.
type Day struct {
	Date     string
	Location *time.Location
	midnight time.Time
}

// ParseDay resolves a "YYYY-MM-DD" date in an IANA timezone.
func ParseDay(date, timezone string) (Day, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	return NewDay(date, loc)
}

// NewDay resolves a "YYYY-MM-DD" date in loc.
func NewDay(date string, loc *time.Location) (Day, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return Day{Date: date, Location: loc, midnight: t}, nil
}

// Start returns local midnight.
func (d Day) Start() time.Time {
	return d.midnight
}

// End returns the next local midnight.
func (d Day) End() time.Time {
	return d.midnight.AddDate(0, 0, 1)
}

// Weekday returns the ISO weekday (1=Monday, 7=Sunday).
func (d Day) Weekday() int {
	if wd := d.midnight.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

// MinuteOf converts an instant to local minutes of this day, clipped to
// [0, MinutesPerDay].
func (d Day) MinuteOf(t time.Time) int {
	if !t.After(d.Start()) {
		return 0
	}
	if !t.Before(d.End()) {
		return MinutesPerDay
	}
	local := t.In(d.Location)
	return local.Hour()*60 + local.Minute()
}

// MinuteCeilOf is MinuteOf rounded up to the next whole minute.
func (d Day) MinuteCeilOf(t time.Time) int {
	m := d.MinuteOf(t)
	if !t.After(d.Start()) || !t.Before(d.End()) {
		return m
	}
	if local := t.In(d.Location); local.Second() != 0 || local.Nanosecond() != 0 {
		m++
	}
	return m
}

// At returns the instant for a minute of this day.
func (d Day) At(minute int) time.Time {
	y, m, dd := d.midnight.Date()
	return time.Date(y, m, dd, 0, minute, 0, 0, d.Location)
}

// Overlaps reports whether [start, end) intersects the day.
func (d Day) Overlaps(start, end time.Time) bool {
	return start.Before(d.End()) && end.After(d.Start())
}
