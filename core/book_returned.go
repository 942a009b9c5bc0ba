package core

import (
	"time"

	"github.com/google/uuid"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a patron returns a checked-out book copy.
type BookReturned struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	BookType   BookType
	OccurredAt OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	patronID PatronIDString,
	bookID BookIDString,
	bookType BookType,
	occurredAt time.Time,
) BookReturned {

	event := BookReturned{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		BookType:   bookType,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookReturned) EventType() string {
	return BookReturnedEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookReturned) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e BookReturned) HasPatronID() PatronIDString {
	return e.PatronID
}
