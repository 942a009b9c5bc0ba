package core

import (
	"time"

	"github.com/google/uuid"
)

// BookPlacedOnHoldEventType is the event type identifier.
const BookPlacedOnHoldEventType = "BookPlacedOnHold"

// BookPlacedOnHold represents when a patron places a hold on an available book copy.
// HoldTill is nil for an open-ended hold.
type BookPlacedOnHold struct {
	EventID    EventIDString
	PatronID   PatronIDString
	BookID     BookIDString
	BookType   BookType
	HoldFrom   OccurredAtTS
	HoldTill   *OccurredAtTS
	OccurredAt OccurredAtTS
}

// BuildBookPlacedOnHold creates a new BookPlacedOnHold event.
func BuildBookPlacedOnHold(
	patronID PatronIDString,
	bookID BookIDString,
	bookType BookType,
	holdDuration HoldDuration,
	occurredAt time.Time,
) BookPlacedOnHold {

	event := BookPlacedOnHold{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		BookID:     bookID,
		BookType:   bookType,
		HoldFrom:   ToOccurredAt(holdDuration.From()),
		HoldTill:   holdDuration.HoldTill(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookPlacedOnHold) EventType() string {
	return BookPlacedOnHoldEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e BookPlacedOnHold) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e BookPlacedOnHold) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookPlacedOnHold) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e BookPlacedOnHold) HasPatronID() PatronIDString {
	return e.PatronID
}

// IsOpenEnded returns true if the hold has no expiry.
func (e BookPlacedOnHold) IsOpenEnded() bool {
	return e.HoldTill == nil
}
