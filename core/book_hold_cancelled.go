package core

import (
	"time"

	"github.com/google/uuid"
)

// BookHoldCancelledEventType is the event type identifier.
const BookHoldCancelledEventType = "BookHoldCancelled"

// BookHoldCancelled represents when a patron's hold on a book copy is cancelled.
type BookHoldCancelled struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

// BuildBookHoldCancelled creates a new BookHoldCancelled event.
func BuildBookHoldCancelled(patronID PatronIDString, bookID BookIDString, occurredAt time.Time) BookHoldCancelled {
	event := BookHoldCancelled{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookHoldCancelled) EventType() string {
	return BookHoldCancelledEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookHoldCancelled) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookHoldCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookHoldCancelled) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e BookHoldCancelled) HasPatronID() PatronIDString {
	return e.PatronID
}
