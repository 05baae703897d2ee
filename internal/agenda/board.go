// Package agenda is the day view of one tenant: it derives availability,
// free gaps and the visible range from the loaded data, lays them out on the
// timeline and routes pointer gestures to the owning collaborator.
package agenda

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"barberpanel/internal/gesture"
	"barberpanel/internal/layout"
	"barberpanel/internal/metrics"
	"barberpanel/internal/model"
	"barberpanel/internal/slots"
	"barberpanel/internal/timewindow"
)

var (
	ErrGestureActive  = errors.New("another gesture is in progress")
	ErrUnknownBooking = errors.New("booking not on this agenda")
	ErrNoInput        = errors.New("agenda has no input")
)

// Input is the data shown for one day.
type Input struct {
	Bookings  []model.Booking
	Blockings []model.StaffBlocking
	Schedules []model.StaffSchedule
	Staff     []model.Staff
	Date      string // YYYY-MM-DD
	Timezone  string // IANA name

	// Windows, when set, is used instead of deriving availability again.
	Windows timewindow.StaffWindowsMap
}

// FreeSlot is the payload of a click on a free gap.
type FreeSlot struct {
	StaffID string `json:"staff_id"`
	Time    string `json:"time"`
	EndTime string `json:"end_time"`
	Date    string `json:"date"`
}

// Callbacks receive the board's outgoing actions. Nil callbacks are skipped.
// Instants are RFC 3339 UTC strings.
type Callbacks struct {
	OnBookingMove   func(bookingID, staffID, startISO, endISO string)
	OnBookingResize func(bookingID, startISO, endISO string)
	OnSlotClick     func(staffID, timeSlot string)
	OnFreeSlotClick func(slot FreeSlot)
	OnBookingClick  func(bookingID string)
}

// Handle is the part of a booking block the pointer went down on.
type Handle string

const (
	HandleBody        Handle = "body"
	HandleResizeStart Handle = "resize-start"
	HandleResizeEnd   Handle = "resize-end"
)

// Options configure rendering and gesture handling.
type Options struct {
	Grid          layout.Grid
	Thresholds    gesture.Thresholds
	MinGapMinutes int
	DefaultRange  slots.DayRange
	Protected     []model.BookingStatus
	ClickSuppress time.Duration
	RulerWidthPx  float64
	ColumnWidthPx float64

	// Viewport is the scroll container used for auto-scroll. Optional.
	Viewport gesture.Viewport
	// Lanes overrides the geometric column lookup. Optional.
	Lanes gesture.LaneResolver
}

// DefaultOptions mirrors the stock agenda layout.
func DefaultOptions() Options {
	return Options{
		Grid:          layout.DefaultGrid(),
		Thresholds:    gesture.DefaultThresholds(),
		MinGapMinutes: slots.MinGapMinutes,
		DefaultRange:  slots.DefaultDayRange,
		Protected:     model.DefaultProtectedStatuses,
		ClickSuppress: gesture.ClickSuppressWindow,
		RulerWidthPx:  60,
		ColumnWidthPx: 180,
	}
}

// Board owns the derived day data and at most one active gesture.
type Board struct {
	mu   sync.Mutex
	opts Options
	cb   Callbacks
	base zerolog.Logger
	log  zerolog.Logger

	loaded   bool
	input    Input
	day      timewindow.Day
	revision uint64
	windows  timewindow.StaffWindowsMap
	diags    []timewindow.Diagnostic
	dayRange slots.DayRange
	gaps     map[string][]slots.Gap
	staffIDs []string
	staff    map[string]model.Staff
	bookings map[string]model.Booking

	active gesture.Controller
	guard  *gesture.ClickGuard
}

// NewBoard creates an empty board.
func NewBoard(opts Options, cb Callbacks, logger zerolog.Logger) *Board {
	if opts.MinGapMinutes <= 0 {
		opts.MinGapMinutes = slots.MinGapMinutes
	}
	if opts.DefaultRange.EndHour <= opts.DefaultRange.StartHour {
		opts.DefaultRange = slots.DefaultDayRange
	}
	if opts.ColumnWidthPx <= 0 {
		opts.ColumnWidthPx = 180
	}
	return &Board{
		opts:  opts,
		cb:    cb,
		base:  logger,
		log:   logger.With().Str("component", "agenda").Logger(),
		guard: gesture.NewClickGuard(opts.ClickSuppress),
	}
}

// SetInput replaces the day data and recomputes everything derived from it.
// An active gesture keeps the snapshot it started with.
func (b *Board) SetInput(in Input) error {
	day, err := timewindow.ParseDay(in.Date, in.Timezone)
	if err != nil {
		return fmt.Errorf("set agenda input: %w", err)
	}

	windows, diags := in.Windows, []timewindow.Diagnostic(nil)
	if windows == nil {
		started := time.Now()
		windows, diags = timewindow.BuildStaffWindowsForDay(in.Schedules, in.Blockings, day)
		metrics.ObserveWindowsBuild(time.Since(started))
	}
	for _, d := range diags {
		b.log.Warn().Str("staff_id", d.StaffID).Str("date", in.Date).Msg(d.Reason)
	}

	var todays []model.StaffSchedule
	for _, s := range in.Schedules {
		if timewindow.AppliesTo(s, day) {
			todays = append(todays, s)
		}
	}
	dayRange := slots.DeriveDayRange(windows, todays, b.opts.DefaultRange)

	bookings := make(map[string]model.Booking, len(in.Bookings))
	for _, bk := range in.Bookings {
		bookings[bk.ID] = bk
	}
	staffIDs, staff := orderStaff(in, windows)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.loaded = true
	b.input = in
	b.day = day
	b.revision++
	b.windows = windows
	b.diags = diags
	b.dayRange = dayRange
	b.staffIDs = staffIDs
	b.staff = staff
	b.bookings = bookings
	b.gaps = freeGaps(day, windows, in.Bookings, b.opts.MinGapMinutes)

	b.log.Debug().
		Str("date", in.Date).
		Uint64("revision", b.revision).
		Int("staff", len(staffIDs)).
		Int("bookings", len(in.Bookings)).
		Msg("agenda input updated")
	return nil
}

// orderStaff returns lane order: staff by position then name, followed by
// any staff that only appears in schedules, bookings or blockings.
func orderStaff(in Input, windows timewindow.StaffWindowsMap) ([]string, map[string]model.Staff) {
	staff := make(map[string]model.Staff, len(in.Staff))
	listed := make([]model.Staff, 0, len(in.Staff))
	for _, s := range in.Staff {
		if _, dup := staff[s.ID]; dup {
			continue
		}
		staff[s.ID] = s
		listed = append(listed, s)
	}
	sort.SliceStable(listed, func(i, j int) bool {
		if listed[i].Position != listed[j].Position {
			return listed[i].Position < listed[j].Position
		}
		return listed[i].Name < listed[j].Name
	})

	ids := make([]string, 0, len(listed))
	for _, s := range listed {
		ids = append(ids, s.ID)
	}

	seen := make(map[string]bool)
	var extra []string
	add := func(id string) {
		if _, ok := staff[id]; ok || id == "" || seen[id] {
			return
		}
		seen[id] = true
		extra = append(extra, id)
	}
	for id := range windows {
		add(id)
	}
	for _, bk := range in.Bookings {
		add(bk.StaffID)
	}
	for _, bl := range in.Blockings {
		add(bl.StaffID)
	}
	sort.Strings(extra)
	return append(ids, extra...), staff
}

// freeGaps finds gaps per availability window. Blockings are already cut out
// of the windows so only bookings that occupy time count as busy.
func freeGaps(day timewindow.Day, windows timewindow.StaffWindowsMap, bookings []model.Booking, minGap int) map[string][]slots.Gap {
	busy := make(map[string][]timewindow.TimeWindow)
	for i := range bookings {
		bk := &bookings[i]
		if !bk.OccupiesTime() || !day.Overlaps(bk.StartsAt, bk.EndsAt) {
			continue
		}
		busy[bk.StaffID] = append(busy[bk.StaffID], timewindow.TimeWindow{
			Start: day.MinuteOf(bk.StartsAt),
			End:   day.MinuteOf(bk.EndsAt),
		})
	}

	out := make(map[string][]slots.Gap, len(windows))
	for staffID, ws := range windows {
		for _, w := range ws {
			out[staffID] = append(out[staffID], slots.FindFreeGaps(w, busy[staffID], minGap)...)
		}
	}
	return out
}

// Revision increments on every SetInput.
func (b *Board) Revision() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revision
}

// Windows returns the availability of every scheduled staff member.
func (b *Board) Windows() timewindow.StaffWindowsMap {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.windows
}

// Diagnostics lists schedule entries that could not be parsed.
func (b *Board) Diagnostics() []timewindow.Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.diags
}

// DayRange returns the visible hours.
func (b *Board) DayRange() slots.DayRange {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded {
		return b.opts.DefaultRange
	}
	return b.dayRange
}

// FreeGaps returns the free gaps of one staff member.
func (b *Board) FreeGaps(staffID string) []slots.Gap {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gaps[staffID]
}

// StaffIDs returns the lane order.
func (b *Board) StaffIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.staffIDs...)
}

// Booking looks up a booking of the current input.
func (b *Board) Booking(id string) (model.Booking, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bk, ok := b.bookings[id]
	return bk, ok
}

// Columns returns the geometric lane layout.
func (b *Board) Columns() gesture.Columns {
	b.mu.Lock()
	defer b.mu.Unlock()
	return gesture.EvenColumns(b.staffIDs, b.opts.RulerWidthPx, b.opts.ColumnWidthPx)
}

func (b *Board) envLocked() gesture.Env {
	lanes := b.opts.Lanes
	if lanes == nil {
		lanes = gesture.EvenColumns(b.staffIDs, b.opts.RulerWidthPx, b.opts.ColumnWidthPx)
	}
	return gesture.Env{
		Grid:             b.opts.Grid,
		Day:              b.day,
		DayStartMinutes:  b.dayRange.StartMinutes(),
		TimelineHeightPx: b.opts.Grid.TimelineHeight(b.dayRange.StartHour, b.dayRange.EndHour),
		Windows:          b.windows,
		Lanes:            lanes,
		Viewport:         b.opts.Viewport,
		Protected:        b.opts.Protected,
		Thresholds:       b.opts.Thresholds,
		Logger:           b.base,
	}
}

// instant converts a minute of the booking's local calendar day to RFC 3339.
func (b *Board) instant(bk model.Booking, minute int) string {
	loc := b.day.Location
	day, err := timewindow.NewDay(bk.StartsAt.In(loc).Format(timewindow.DateLayout), loc)
	if err != nil {
		day = b.day
	}
	return day.At(minute).UTC().Format(time.RFC3339)
}
