package core

import (
	"time"

	"github.com/google/uuid"
)

// BookHoldExpiredEventType is the event type identifier.
const BookHoldExpiredEventType = "BookHoldExpired"

// BookHoldExpired represents when a close-ended hold passes its expiry without
// being checked out. It is produced by the daily reconciliation, not by a command.
type BookHoldExpired struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

// BuildBookHoldExpired creates a new BookHoldExpired event.
func BuildBookHoldExpired(patronID PatronIDString, bookID BookIDString, occurredAt time.Time) BookHoldExpired {
	event := BookHoldExpired{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookHoldExpired) EventType() string {
	return BookHoldExpiredEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookHoldExpired) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookHoldExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookHoldExpired) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e BookHoldExpired) HasPatronID() PatronIDString {
	return e.PatronID
}
