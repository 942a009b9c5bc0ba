package core

import (
	"time"

	"github.com/google/uuid"
)

// BookHoldFailedEventType is the event type identifier.
const BookHoldFailedEventType = "BookHoldFailed"

// BookHoldFailed represents when placing a hold fails due to a policy rejection
// or a missing collaborator.
type BookHoldFailed struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildBookHoldFailed creates a new BookHoldFailed event.
func BuildBookHoldFailed(
	patronID PatronIDString,
	bookID BookIDString,
	reason string,
	occurredAt time.Time,
) BookHoldFailed {

	event := BookHoldFailed{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookHoldFailed) EventType() string {
	return BookHoldFailedEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookHoldFailed) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookHoldFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e BookHoldFailed) IsErrorEvent() bool {
	return true
}

// HasPatronID returns the patron this event belongs to.
func (e BookHoldFailed) HasPatronID() PatronIDString {
	return e.PatronID
}
