package model

import "time"

// BlockingType classifies a staff blocking.
type BlockingType string

const (
	BlockingBlock    BlockingType = "block"
	BlockingAbsence  BlockingType = "absence"
	BlockingVacation BlockingType = "vacation"
)

// Valid reports whether t is a known blocking type.
func (t BlockingType) Valid() bool {
	switch t {
	case BlockingBlock, BlockingAbsence, BlockingVacation:
		return true
	}
	return false
}

// StaffBlocking is time a staff member is unavailable regardless of bookings.
type StaffBlocking struct {
	ID        string       `json:"id"`
	TenantID  string       `json:"tenant_id"`
	StaffID   string       `json:"staff_id"`
	StartAt   time.Time    `json:"start_at"`
	EndAt     time.Time    `json:"end_at"`
	Type      BlockingType `json:"type"`
	Reason    string       `json:"reason,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// StaffSchedule is the base working envelope of a staff member for a weekday.
type StaffSchedule struct {
	StaffID   string `json:"staff_id"`
	Weekday   int    `json:"weekday"`    // 1-7 (Monday-Sunday)
	StartTime string `json:"start_time"` // "09:00"
	EndTime   string `json:"end_time"`   // "18:00"
}

// Staff is a service provider shown as one agenda column.
type Staff struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

// Tenant is one barbershop.
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// ISOWeekday maps time.Weekday to 1-7 with Monday first.
func ISOWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
