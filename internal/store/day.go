package store

import (
	"context"
	"fmt"

	"barberpanel/internal/agenda"
)

// LoadDay gathers everything the agenda of one local date needs.
func (db *DB) LoadDay(ctx context.Context, tenantID, date string) (agenda.Input, error) {
	tenant, day, err := db.DayBounds(ctx, tenantID, date)
	if err != nil {
		return agenda.Input{}, err
	}

	staff, err := db.ListStaff(ctx, tenantID)
	if err != nil {
		return agenda.Input{}, fmt.Errorf("list staff: %w", err)
	}
	schedules, err := db.ListSchedules(ctx, tenantID)
	if err != nil {
		return agenda.Input{}, fmt.Errorf("list schedules: %w", err)
	}
	blockings, err := db.ListBlockings(ctx, tenantID, day.Start(), day.End())
	if err != nil {
		return agenda.Input{}, fmt.Errorf("list blockings: %w", err)
	}
	bookings, err := db.ListBookings(ctx, tenantID, day.Start(), day.End())
	if err != nil {
		return agenda.Input{}, fmt.Errorf("list bookings: %w", err)
	}

	return agenda.Input{
		Bookings:  bookings,
		Blockings: blockings,
		Schedules: schedules,
		Staff:     staff,
		Date:      day.Date,
		Timezone:  tenant.Timezone,
	}, nil
}
