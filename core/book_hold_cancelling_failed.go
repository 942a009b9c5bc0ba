package core

import (
	"time"

	"github.com/google/uuid"
)

// BookHoldCancellingFailedEventType is the event type identifier.
const BookHoldCancellingFailedEventType = "BookHoldCancellingFailed"

// CancellingFailedReason classifies why cancelling a hold failed.
type CancellingFailedReason string

const (
	// CancellingFailedBookNotFound means the book on hold could not be found.
	CancellingFailedBookNotFound CancellingFailedReason = "BookNotFound"

	// CancellingFailedPatronNotFound means the patron could not be found.
	CancellingFailedPatronNotFound CancellingFailedReason = "PatronNotFound"

	// CancellingFailedBookNotHeld means the patron does not hold the book.
	CancellingFailedBookNotHeld CancellingFailedReason = "BookNotHeld"

	// CancellingFailedSystem means a storage or transport failure occurred.
	CancellingFailedSystem CancellingFailedReason = "System"
)

// BookHoldCancellingFailed represents when cancelling a hold on a book copy fails.
type BookHoldCancellingFailed struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	Reason     CancellingFailedReason
	Details    string
	OccurredAt OccurredAtTS
}

// BuildBookHoldCancellingFailed creates a new BookHoldCancellingFailed event.
func BuildBookHoldCancellingFailed(
	patronID PatronIDString,
	bookID BookIDString,
	reason CancellingFailedReason,
	details string,
	occurredAt time.Time,
) BookHoldCancellingFailed {

	event := BookHoldCancellingFailed{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		Reason:     reason,
		Details:    details,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookHoldCancellingFailed) EventType() string {
	return BookHoldCancellingFailedEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookHoldCancellingFailed) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookHoldCancellingFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e BookHoldCancellingFailed) IsErrorEvent() bool {
	return true
}

// HasPatronID returns the patron this event belongs to.
func (e BookHoldCancellingFailed) HasPatronID() PatronIDString {
	return e.PatronID
}
