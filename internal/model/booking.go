package model

import (
	"errors"
	"fmt"
	"time"
)

// BookingStatus is the lifecycle status of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusHold      BookingStatus = "hold"
	StatusPaid      BookingStatus = "paid"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

var (
	ErrInvalidStatus = errors.New("invalid booking status")
	ErrInvalidRange  = errors.New("booking must end after it starts")
)

// DefaultProtectedStatuses can not be moved or resized on the agenda.
var DefaultProtectedStatuses = []BookingStatus{StatusPaid, StatusCompleted}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusHold, StatusPaid, StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Booking is a customer appointment with a staff member.
type Booking struct {
	ID         string        `json:"id"`
	TenantID   string        `json:"tenant_id"`
	StaffID    string        `json:"staff_id"`
	CustomerID string        `json:"customer_id,omitempty"`
	ServiceID  string        `json:"service_id,omitempty"`
	StartsAt   time.Time     `json:"starts_at"`
	EndsAt     time.Time     `json:"ends_at"`
	Status     BookingStatus `json:"status"`
	Version    int64         `json:"version"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Duration returns the booked duration.
func (b *Booking) Duration() time.Duration {
	return b.EndsAt.Sub(b.StartsAt)
}

// DurationMinutes returns the booked duration in whole minutes.
func (b *Booking) DurationMinutes() int {
	return int(b.Duration() / time.Minute)
}

// IsProtected reports whether the status is one of protected.
func (b *Booking) IsProtected(protected []BookingStatus) bool {
	for _, st := range protected {
		if b.Status == st {
			return true
		}
	}
	return false
}

// OccupiesTime reports whether the booking blocks the staff's time.
// Cancelled and no-show bookings stay visible but free the slot.
func (b *Booking) OccupiesTime() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// Validate checks the booking invariants.
func (b *Booking) Validate() error {
	if _, err := ParseStatus(string(b.Status)); err != nil {
		return err
	}
	if !b.EndsAt.After(b.StartsAt) {
		return ErrInvalidRange
	}
	return nil
}
