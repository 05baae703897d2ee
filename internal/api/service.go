package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"barberpanel/internal/agenda"
	"barberpanel/internal/gesture"
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

var (
	// ErrRejected is returned when a proposed change does not fit the staff's windows.
	ErrRejected    = errors.New("change rejected")
	ErrInvalidEdge = errors.New("edge must be start or end")
)

// Store is the persistence the agenda service needs.
type Store interface {
	GetTenant(ctx context.Context, id string) (*model.Tenant, error)
	LoadDay(ctx context.Context, tenantID, date string) (agenda.Input, error)
	GetBooking(ctx context.Context, tenantID, id string) (*model.Booking, error)
	MoveBooking(ctx context.Context, tenantID, id, staffID string, start, end time.Time, version int64) (*model.Booking, error)
	ResizeBooking(ctx context.Context, tenantID, id string, start, end time.Time, version int64) (*model.Booking, error)
	PingContext(ctx context.Context) error
}

// WindowsCache holds derived availability per tenant and date.
type WindowsCache interface {
	Get(ctx context.Context, tenantID, date string) (timewindow.StaffWindowsMap, bool)
	Set(ctx context.Context, tenantID, date string, windows timewindow.StaffWindowsMap) error
	Ping(ctx context.Context) error
}

// Change is the outcome of a persisted move or resize.
type Change struct {
	Result  gesture.Result `json:"result"`
	Booking *model.Booking `json:"booking"`
}

// AgendaService builds boards from the store and applies headless edits.
type AgendaService struct {
	store  Store
	cache  WindowsCache
	base   zerolog.Logger
	logger zerolog.Logger

	mu   sync.RWMutex
	opts agenda.Options
}

// NewAgendaService creates the service. cache may be nil.
func NewAgendaService(store Store, cache WindowsCache, opts agenda.Options, logger zerolog.Logger) *AgendaService {
	return &AgendaService{
		store:  store,
		cache:  cache,
		opts:   opts,
		base:   logger,
		logger: logger.With().Str("component", "agenda_service").Logger(),
	}
}

// SetOptions swaps the board options used for later requests.
func (s *AgendaService) SetOptions(opts agenda.Options) {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
}

func (s *AgendaService) options() agenda.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Board loads one day of a tenant into a fresh board.
func (s *AgendaService) Board(ctx context.Context, tenantID, date string) (*agenda.Board, error) {
	in, err := s.store.LoadDay(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}

	cached := false
	if s.cache != nil {
		in.Windows, cached = s.cache.Get(ctx, tenantID, in.Date)
	}

	board := agenda.NewBoard(s.options(), agenda.Callbacks{}, s.base)
	if err := board.SetInput(in); err != nil {
		return nil, err
	}

	if s.cache != nil && !cached {
		if err := s.cache.Set(ctx, tenantID, in.Date, board.Windows()); err != nil {
			s.logger.Warn().Err(err).Str("tenant_id", tenantID).Str("date", in.Date).Msg("store windows in cache")
		}
	}
	return board, nil
}

// Timeline returns the laid out day.
func (s *AgendaService) Timeline(ctx context.Context, tenantID, date string) (agenda.Timeline, []timewindow.Diagnostic, error) {
	board, err := s.Board(ctx, tenantID, date)
	if err != nil {
		return agenda.Timeline{}, nil, err
	}
	tl, err := board.Timeline()
	if err != nil {
		return agenda.Timeline{}, nil, err
	}
	return tl, board.Diagnostics(), nil
}

// Move snaps a booking to staffID at clock and persists the result.
// An empty staffID keeps the booking's staff.
func (s *AgendaService) Move(ctx context.Context, tenantID, bookingID, staffID, clock string) (*Change, error) {
	minute, err := timewindow.ParseClock(clock)
	if err != nil {
		return nil, err
	}
	bk, board, day, err := s.bookingBoard(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	res, err := board.ProposeMove(bk.ID, staffID, minute)
	if err != nil {
		return nil, err
	}
	if !res.Committed() {
		return &Change{Result: res}, fmt.Errorf("%w: %s", ErrRejected, res.Reason)
	}

	updated, err := s.store.MoveBooking(ctx, tenantID, bk.ID, res.StaffID, day.At(res.Start), day.At(res.End), bk.Version)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("gesture_id", res.GestureID).
		Str("booking_id", bk.ID).
		Str("staff_id", res.StaffID).
		Str("start", timewindow.FormatClock(res.Start)).
		Msg("booking moved")
	return &Change{Result: res, Booking: updated}, nil
}

// Resize moves one edge of a booking to clock and persists the result.
func (s *AgendaService) Resize(ctx context.Context, tenantID, bookingID string, edge gesture.Edge, clock string) (*Change, error) {
	if edge != gesture.EdgeStart && edge != gesture.EdgeEnd {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEdge, edge)
	}
	minute, err := timewindow.ParseClock(clock)
	if err != nil {
		return nil, err
	}
	bk, board, day, err := s.bookingBoard(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	res, err := board.ProposeResize(bk.ID, edge, minute)
	if err != nil {
		return nil, err
	}
	if !res.Committed() {
		return &Change{Result: res}, fmt.Errorf("%w: %s", ErrRejected, res.Reason)
	}

	updated, err := s.store.ResizeBooking(ctx, tenantID, bk.ID, day.At(res.Start), day.At(res.End), bk.Version)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("gesture_id", res.GestureID).
		Str("booking_id", bk.ID).
		Str("edge", string(edge)).
		Str("start", timewindow.FormatClock(res.Start)).
		Str("end", timewindow.FormatClock(res.End)).
		Msg("booking resized")
	return &Change{Result: res, Booking: updated}, nil
}

// bookingBoard loads the board of the local day the booking starts on.
func (s *AgendaService) bookingBoard(ctx context.Context, tenantID, bookingID string) (*model.Booking, *agenda.Board, timewindow.Day, error) {
	bk, err := s.store.GetBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, nil, timewindow.Day{}, err
	}
	tenant, err := s.store.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, timewindow.Day{}, err
	}
	loc, err := time.LoadLocation(tenant.Timezone)
	if err != nil {
		return nil, nil, timewindow.Day{}, fmt.Errorf("tenant timezone: %w", err)
	}

	day, err := timewindow.NewDay(bk.StartsAt.In(loc).Format(timewindow.DateLayout), loc)
	if err != nil {
		return nil, nil, timewindow.Day{}, err
	}
	board, err := s.Board(ctx, tenantID, day.Date)
	if err != nil {
		return nil, nil, timewindow.Day{}, err
	}
	return bk, board, day, nil
}
