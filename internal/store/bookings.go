package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"barberpanel/internal/events"
	"barberpanel/internal/model"
	"barberpanel/internal/timewindow"
)

const bookingColumns = `id, tenant_id, staff_id, COALESCE(customer_id, ''), COALESCE(service_id, ''),
	starts_at, ends_at, status, version, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b                   model.Booking
		start, end, updated string
		status              string
	)
	if err := row.Scan(&b.ID, &b.TenantID, &b.StaffID, &b.CustomerID, &b.ServiceID,
		&start, &end, &status, &b.Version, &updated); err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)

	var err error
	if b.StartsAt, err = parseTime(start); err != nil {
		return nil, err
	}
	if b.EndsAt, err = parseTime(end); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBooking inserts a booking at version 1.
func (db *DB) CreateBooking(ctx context.Context, b *model.Booking) error {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Version = 1
	b.UpdatedAt = time.Now().UTC()

	_, err := db.ExecContext(ctx, `
		INSERT INTO bookings (id, tenant_id, staff_id, customer_id, service_id, starts_at, ends_at, status, version, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.TenantID, b.StaffID, b.CustomerID, b.ServiceID,
		formatTime(b.StartsAt), formatTime(b.EndsAt), string(b.Status), b.Version, formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	db.publish(events.BookingCreated, b.TenantID, b.StaffID, "", b)
	return nil
}

// GetBooking returns a booking of the tenant.
func (db *DB) GetBooking(ctx context.Context, tenantID, id string) (*model.Booking, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return b, err
}

// ListBookings returns the bookings overlapping [from, to).
func (db *DB) ListBookings(ctx context.Context, tenantID string, from, to time.Time) ([]model.Booking, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		WHERE tenant_id = ? AND starts_at < ? AND ends_at > ?
		ORDER BY starts_at, id`,
		tenantID, formatTime(to), formatTime(from),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// MoveBooking reassigns a booking to staffID and [start, end). version must
// match the stored one.
func (db *DB) MoveBooking(ctx context.Context, tenantID, id, staffID string, start, end time.Time, version int64) (*model.Booking, error) {
	b, err := db.updateBooking(ctx, tenantID, id, staffID, start, end, version)
	if err != nil {
		return nil, err
	}
	db.publish(events.BookingMoved, tenantID, b.StaffID, "", b)
	return b, nil
}

// ResizeBooking changes the range of a booking on its current staff.
func (db *DB) ResizeBooking(ctx context.Context, tenantID, id string, start, end time.Time, version int64) (*model.Booking, error) {
	b, err := db.updateBooking(ctx, tenantID, id, "", start, end, version)
	if err != nil {
		return nil, err
	}
	db.publish(events.BookingResized, tenantID, b.StaffID, "", b)
	return b, nil
}

func (db *DB) updateBooking(ctx context.Context, tenantID, id, staffID string, start, end time.Time, version int64) (*model.Booking, error) {
	if !end.After(start) {
		return nil, model.ErrInvalidRange
	}

	res, err := db.ExecContext(ctx, `
		UPDATE bookings
		SET staff_id = COALESCE(NULLIF(?, ''), staff_id),
			starts_at = ?, ends_at = ?,
			version = version + 1,
			updated_at = ?
		WHERE id = ? AND tenant_id = ? AND version = ?`,
		staffID, formatTime(start), formatTime(end), formatTime(time.Now()),
		id, tenantID, version,
	)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if _, err := db.GetBooking(ctx, tenantID, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("booking %s at version %d: %w", id, version, ErrVersionConflict)
	}

	db.logger.Debug().Str("booking_id", id).Int64("version", version+1).Msg("booking updated")
	return db.GetBooking(ctx, tenantID, id)
}

// SetBookingStatus changes the status of a booking.
func (db *DB) SetBookingStatus(ctx context.Context, tenantID, id string, status model.BookingStatus) error {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND tenant_id = ?`,
		string(status), formatTime(time.Now()), id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return nil
}

// DayBounds resolves a local date of the tenant to its instants.
func (db *DB) DayBounds(ctx context.Context, tenantID, date string) (*model.Tenant, timewindow.Day, error) {
	t, err := db.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, timewindow.Day{}, err
	}
	day, err := timewindow.ParseDay(date, t.Timezone)
	if err != nil {
		return nil, timewindow.Day{}, err
	}
	return t, day, nil
}
