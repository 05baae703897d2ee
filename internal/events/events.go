// Package events is the in-process subscription channel of the agenda store.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types published by the store.
const (
	BookingMoved    = "booking.moved"
	BookingResized  = "booking.resized"
	BookingCreated  = "booking.created"
	BlockingChanged = "blocking.changed"
	ScheduleChanged = "schedule.changed"
)

// Event describes a change to one tenant's agenda. Date is the local
// YYYY-MM-DD the change touches, empty when it may touch any day.
type Event struct {
	Type      string
	TenantID  string
	StaffID   string
	Date      string
	Payload   []byte
	CreatedAt time.Time
}

// NewEvent builds an event with a JSON payload.
func NewEvent(eventType, tenantID, staffID, date string, payload any) (Event, error) {
	ev := Event{Type: eventType, TenantID: tenantID, StaffID: staffID, Date: date, CreatedAt: time.Now()}
	if payload == nil {
		return ev, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	ev.Payload = data
	return ev, nil
}

// EventHandler reacts to an event.
type EventHandler func(event Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	logger      zerolog.Logger
}

// NewEventBus constructs an empty bus.
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventHandler),
		logger:      logger.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeMany registers one handler for several event types.
func (b *EventBus) SubscribeMany(handler EventHandler, eventTypes ...string) {
	for _, t := range eventTypes {
		b.Subscribe(t, handler)
	}
}

// Publish notifies subscribers of the event type. Handlers run synchronously
// in registration order; a failing handler does not stop the others.
func (b *EventBus) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			b.logger.Warn().Err(err).
				Str("type", event.Type).
				Str("tenant_id", event.TenantID).
				Msg("event handler failed")
		}
	}
}
