package core

import (
	"time"

	"github.com/google/uuid"
)

// OverdueCheckoutRegisteredEventType is the event type identifier.
const OverdueCheckoutRegisteredEventType = "OverdueCheckoutRegistered"

// OverdueCheckoutRegistered represents when a checkout passes its due date
// without return. It is produced by the daily reconciliation, not by a command.
type OverdueCheckoutRegistered struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

// BuildOverdueCheckoutRegistered creates a new OverdueCheckoutRegistered event.
func BuildOverdueCheckoutRegistered(patronID PatronIDString, bookID BookIDString, occurredAt time.Time) OverdueCheckoutRegistered {
	event := OverdueCheckoutRegistered{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e OverdueCheckoutRegistered) EventType() string {
	return OverdueCheckoutRegisteredEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e OverdueCheckoutRegistered) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e OverdueCheckoutRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e OverdueCheckoutRegistered) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e OverdueCheckoutRegistered) HasPatronID() PatronIDString {
	return e.PatronID
}
