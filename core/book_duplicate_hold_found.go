package core

import (
	"time"

	"github.com/google/uuid"
)

// BookDuplicateHoldFoundEventType is the event type identifier.
const BookDuplicateHoldFoundEventType = "BookDuplicateHoldFound"

// BookDuplicateHoldFound represents when two patrons are recorded as holding the
// same book copy due to a race between concurrent hold requests. The first patron
// is the current holder at Book level; the second lost the race and must have
// their hold compensated.
type BookDuplicateHoldFound struct {
	EventID        EventIDString
	BookID         BookIDString
	FirstPatronID  PatronIDString
	SecondPatronID PatronIDString
	OccurredAt     OccurredAtTS
}

// BuildBookDuplicateHoldFound creates a new BookDuplicateHoldFound event.
func BuildBookDuplicateHoldFound(
	bookID BookIDString,
	firstPatronID PatronIDString,
	secondPatronID PatronIDString,
	occurredAt time.Time,
) BookDuplicateHoldFound {

	event := BookDuplicateHoldFound{
		EventID:        uuid.New().String(),
		BookID:         bookID,
		FirstPatronID:  firstPatronID,
		SecondPatronID: secondPatronID,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookDuplicateHoldFound) EventType() string {
	return BookDuplicateHoldFoundEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookDuplicateHoldFound) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookDuplicateHoldFound) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since a duplicate hold is a detected race, not a failure.
func (e BookDuplicateHoldFound) IsErrorEvent() bool {
	return false
}
