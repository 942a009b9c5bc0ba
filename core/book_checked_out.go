package core

import (
	"time"

	"github.com/google/uuid"
)

// BookCheckedOutEventType is the event type identifier.
const BookCheckedOutEventType = "BookCheckedOut"

// BookCheckedOut represents when a patron checks out a book copy they held.
type BookCheckedOut struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	BookType   BookType
	Till       OccurredAtTS
	OccurredAt OccurredAtTS
}

// BuildBookCheckedOut creates a new BookCheckedOut event.
func BuildBookCheckedOut(
	patronID PatronIDString,
	bookID BookIDString,
	bookType BookType,
	till time.Time,
	occurredAt time.Time,
) BookCheckedOut {

	event := BookCheckedOut{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		BookType:   bookType,
		Till:       ToOccurredAt(till),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookCheckedOut) EventType() string {
	return BookCheckedOutEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookCheckedOut) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookCheckedOut) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e BookCheckedOut) HasPatronID() PatronIDString {
	return e.PatronID
}
