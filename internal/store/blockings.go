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
)

// CreateBlocking inserts a staff blocking.
func (db *DB) CreateBlocking(ctx context.Context, b *model.StaffBlocking) error {
	if b.Type == "" {
		b.Type = model.BlockingBlock
	}
	if !b.Type.Valid() {
		return fmt.Errorf("invalid blocking type %q", b.Type)
	}
	if !b.EndAt.After(b.StartAt) {
		return model.ErrInvalidRange
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO staff_blockings (id, tenant_id, staff_id, start_at, end_at, type, reason, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.TenantID, b.StaffID, formatTime(b.StartAt), formatTime(b.EndAt),
		string(b.Type), b.Reason, b.Notes, formatTime(b.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert blocking: %w", err)
	}

	db.publish(events.BlockingChanged, b.TenantID, b.StaffID, "", b)
	return nil
}

// DeleteBlocking removes a blocking of the tenant.
func (db *DB) DeleteBlocking(ctx context.Context, tenantID, id string) error {
	var staffID string
	err := db.QueryRowContext(ctx,
		`SELECT staff_id FROM staff_blockings WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	).Scan(&staffID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("blocking %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		`DELETE FROM staff_blockings WHERE id = ? AND tenant_id = ?`, id, tenantID,
	); err != nil {
		return fmt.Errorf("delete blocking: %w", err)
	}

	db.publish(events.BlockingChanged, tenantID, staffID, "", map[string]string{"id": id})
	return nil
}

// ListBlockings returns the blockings overlapping [from, to).
func (db *DB) ListBlockings(ctx context.Context, tenantID string, from, to time.Time) ([]model.StaffBlocking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, tenant_id, staff_id, start_at, end_at, type, COALESCE(reason, ''), COALESCE(notes, ''), created_at
		FROM staff_blockings
		WHERE tenant_id = ? AND start_at < ? AND end_at > ?
		ORDER BY start_at`,
		tenantID, formatTime(to), formatTime(from),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StaffBlocking
	for rows.Next() {
		var (
			b                   model.StaffBlocking
			start, end, created string
			kind                string
		)
		if err := rows.Scan(&b.ID, &b.TenantID, &b.StaffID, &start, &end, &kind, &b.Reason, &b.Notes, &created); err != nil {
			return nil, err
		}
		b.Type = model.BlockingType(kind)
		if b.StartAt, err = parseTime(start); err != nil {
			return nil, err
		}
		if b.EndAt, err = parseTime(end); err != nil {
			return nil, err
		}
		if b.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
