package core

import (
	"time"

	"github.com/google/uuid"
)

// MaximumNumberOfHoldsReachedEventType is the event type identifier.
const MaximumNumberOfHoldsReachedEventType = "MaximumNumberOfHoldsReached"

// MaximumNumberOfHoldsReached represents when a patron's active holds reach the
// configured maximum. It is a warning signal accompanying a successful hold,
// not a rejection.
type MaximumNumberOfHoldsReached struct {
	EventID    EventIDString
	PatronID   PatronIDString
	OccurredAt OccurredAtTS
}

// BuildMaximumNumberOfHoldsReached creates a new MaximumNumberOfHoldsReached event.
func BuildMaximumNumberOfHoldsReached(patronID PatronIDString, occurredAt time.Time) MaximumNumberOfHoldsReached {
	event := MaximumNumberOfHoldsReached{
		EventID:    uuid.New().String(),
		PatronID:   patronID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e MaximumNumberOfHoldsReached) EventType() string {
	return MaximumNumberOfHoldsReachedEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e MaximumNumberOfHoldsReached) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e MaximumNumberOfHoldsReached) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a warning, not a failure.
func (e MaximumNumberOfHoldsReached) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e MaximumNumberOfHoldsReached) HasPatronID() PatronIDString {
	return e.PatronID
}
