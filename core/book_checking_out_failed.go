package core

import (
	"time"

	"github.com/google/uuid"
)

// BookCheckingOutFailedEventType is the event type identifier.
const BookCheckingOutFailedEventType = "BookCheckingOutFailed"

// BookCheckingOutFailed represents when checking out a book copy fails.
type BookCheckingOutFailed struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildBookCheckingOutFailed creates a new BookCheckingOutFailed event.
func BuildBookCheckingOutFailed(
	patronID PatronIDString,
	bookID BookIDString,
	reason string,
	occurredAt time.Time,
) BookCheckingOutFailed {

	event := BookCheckingOutFailed{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookCheckingOutFailed) EventType() string {
	return BookCheckingOutFailedEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookCheckingOutFailed) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookCheckingOutFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e BookCheckingOutFailed) IsErrorEvent() bool {
	return true
}

// HasPatronID returns the patron this event belongs to.
func (e BookCheckingOutFailed) HasPatronID() PatronIDString {
	return e.PatronID
}
