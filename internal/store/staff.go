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

// CreateTenant inserts a tenant, assigning an id when empty.
func (db *DB) CreateTenant(ctx context.Context, t *model.Tenant) error {
	if t.Timezone == "" {
		t.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(t.Timezone); err != nil {
		return fmt.Errorf("%w: %q", timewindow.ErrInvalidTimezone, t.Timezone)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, timezone) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.Timezone,
	)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetTenant returns a tenant by id.
func (db *DB) GetTenant(ctx context.Context, id string) (*model.Tenant, error) {
	var t model.Tenant
	err := db.QueryRowContext(ctx,
		`SELECT id, name, timezone FROM tenants WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateStaff inserts a staff member, assigning an id when empty.
func (db *DB) CreateStaff(ctx context.Context, s *model.Staff) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO staff (id, tenant_id, name, position, is_active) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.TenantID, s.Name, s.Position, s.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

// ListStaff returns the active staff of a tenant in column order.
func (db *DB) ListStaff(ctx context.Context, tenantID string) ([]model.Staff, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, tenant_id, name, position, is_active
		FROM staff
		WHERE tenant_id = ? AND is_active = 1
		ORDER BY position, name`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Position, &s.IsActive); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpsertSchedule sets the working hours of a staff member for a weekday.
func (db *DB) UpsertSchedule(ctx context.Context, tenantID string, s model.StaffSchedule) error {
	if s.Weekday < 0 || s.Weekday > 7 {
		return fmt.Errorf("weekday %d out of range", s.Weekday)
	}
	if _, err := timewindow.ParseClock(s.StartTime); err != nil {
		return err
	}
	if _, err := timewindow.ParseClock(s.EndTime); err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO staff_schedules (staff_id, weekday, start_time, end_time, updated_at)
		SELECT id, ?, ?, ?, CURRENT_TIMESTAMP FROM staff WHERE id = ? AND tenant_id = ?
		ON CONFLICT (staff_id, weekday) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			updated_at = CURRENT_TIMESTAMP`,
		s.Weekday, s.StartTime, s.EndTime, s.StaffID, tenantID,
	)
	if err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("staff %s: %w", s.StaffID, ErrNotFound)
	}

	db.publish(events.ScheduleChanged, tenantID, s.StaffID, "", s)
	return nil
}

// ListSchedules returns every schedule entry of the tenant's active staff.
func (db *DB) ListSchedules(ctx context.Context, tenantID string) ([]model.StaffSchedule, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT sc.staff_id, sc.weekday, sc.start_time, sc.end_time
		FROM staff_schedules sc
		JOIN staff s ON s.id = sc.staff_id
		WHERE s.tenant_id = ? AND s.is_active = 1
		ORDER BY s.position, sc.staff_id, sc.weekday`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StaffSchedule
	for rows.Next() {
		var s model.StaffSchedule
		if err := rows.Scan(&s.StaffID, &s.Weekday, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
