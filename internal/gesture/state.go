// Package gesture implements the pointer-driven drag and resize state
// machines of the day agenda.
package gesture

import "errors"

// State is the phase of a gesture.
type State string

const (
	StateIdle       State = "idle"
	StateDragging   State = "dragging"
	StateResizing   State = "resizing"
	StateCommitting State = "committing"
)

// Kind names the gesture type.
type Kind string

const (
	KindDrag   Kind = "drag"
	KindResize Kind = "resize"
)

// Outcome is how a gesture ended.
type Outcome string

const (
	OutcomeCommitted Outcome = "committed"
	OutcomeClick     Outcome = "click"
	OutcomeRejected  Outcome = "rejected"
	OutcomeCancelled Outcome = "cancelled"
)

// Reason explains a rejected gesture.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonNoWindow              Reason = "no_window"
	ReasonResizeStartUnanchored Reason = "resize_start_unanchored"
	ReasonResizeEndUnanchored   Reason = "resize_end_unanchored"
	ReasonResizeNoRoom          Reason = "resize_no_room"
	ReasonFinished              Reason = "finished"
)

var (
	ErrProtectedBooking = errors.New("booking status does not allow changes")
	ErrInvalidBooking   = errors.New("booking must end after it starts")
)

// Result is what a finished gesture proposes. Start and End are minutes of
// the booking's local day and are only meaningful when Outcome is committed.
type Result struct {
	Kind      Kind    `json:"kind"`
	Outcome   Outcome `json:"outcome"`
	Reason    Reason  `json:"reason,omitempty"`
	GestureID string  `json:"gesture_id"`
	BookingID string  `json:"booking_id"`
	StaffID   string  `json:"staff_id"`
	Start     int     `json:"start"`
	End       int     `json:"end"`
}

// Committed reports whether the result carries a change to apply.
func (r Result) Committed() bool {
	return r.Outcome == OutcomeCommitted
}

// Machine guards gesture phase transitions.
type Machine struct {
	state       State
	transitions map[State][]State
}

// NewMachine creates a machine in the idle state.
func NewMachine() *Machine {
	return &Machine{
		state: StateIdle,
		transitions: map[State][]State{
			StateIdle:       {StateDragging, StateResizing},
			StateDragging:   {StateCommitting, StateIdle},
			StateResizing:   {StateCommitting, StateIdle},
			StateCommitting: {StateIdle},
		},
	}
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// CanTransition checks if transition is allowed.
func (m *Machine) CanTransition(from, to State) bool {
	for _, s := range m.transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves to the given phase if allowed.
func (m *Machine) Transition(to State) bool {
	if !m.CanTransition(m.state, to) {
		return false
	}
	m.state = to
	return true
}
