// Package store persists the agenda of every tenant in SQLite and publishes
// change events for subscribers.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"

	"barberpanel/internal/events"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("booking was modified concurrently")
)

// timeLayout keeps instants sortable as text.
const timeLayout = "2006-01-02T15:04:05.000Z"

// DB wraps sql.DB for the agenda.
type DB struct {
	*sql.DB
	path   string
	bus    *events.EventBus
	logger zerolog.Logger
}

// NewDB opens the database at path and creates missing tables. bus may be nil.
func NewDB(path string, bus *events.EventBus, logger zerolog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	instance := &DB{
		DB:     db,
		path:   path,
		bus:    bus,
		logger: logger.With().Str("component", "store").Logger(),
	}
	if err := instance.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	instance.logger.Info().Str("path", path).Msg("database initialized")
	return instance, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT 'UTC',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS staff (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (tenant_id) REFERENCES tenants(id)
		)`,

		// weekday 1-7, 0 applies to every day
		`CREATE TABLE IF NOT EXISTS staff_schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			staff_id TEXT NOT NULL,
			weekday INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (staff_id, weekday),
			FOREIGN KEY (staff_id) REFERENCES staff(id)
		)`,

		`CREATE TABLE IF NOT EXISTS staff_blockings (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			staff_id TEXT NOT NULL,
			start_at TEXT NOT NULL,
			end_at TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'block',
			reason TEXT,
			notes TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (staff_id) REFERENCES staff(id)
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			staff_id TEXT NOT NULL,
			customer_id TEXT,
			service_id TEXT,
			starts_at TEXT NOT NULL,
			ends_at TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			version INTEGER NOT NULL DEFAULT 1,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (staff_id) REFERENCES staff(id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_staff_tenant ON staff(tenant_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_blockings_range ON staff_blockings(tenant_id, start_at, end_at)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_range ON bookings(tenant_id, starts_at, ends_at)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("exec migration %s: %w", trimSQL(q), err)
		}
	}
	return nil
}

func trimSQL(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

func (db *DB) publish(eventType, tenantID, staffID, date string, payload any) {
	if db.bus == nil {
		return
	}
	ev, err := events.NewEvent(eventType, tenantID, staffID, date, payload)
	if err != nil {
		db.logger.Error().Err(err).Str("type", eventType).Msg("build event")
		return
	}
	db.bus.Publish(ev)
}
