package core

import (
	"time"

	"github.com/google/uuid"
)

// PatronCreatedEventType is the event type identifier.
const PatronCreatedEventType = "PatronCreated"

// PatronCreated represents when a new patron joins the library.
type PatronCreated struct {
	EventID    EventIDString
	PatronID   PatronIDString
	PatronType PatronType
	OccurredAt OccurredAtTS
}

// BuildPatronCreated creates a new PatronCreated event.
func BuildPatronCreated(patronID uuid.UUID, patronType PatronType, occurredAt time.Time) PatronCreated {
	event := PatronCreated{
		EventID:    uuid.New().String(),
		PatronID:   patronID.String(),
		PatronType: patronType,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e PatronCreated) EventType() string {
	return PatronCreatedEventType
}

// HasEventID returns the unique identifier of this event instance.
func (e PatronCreated) HasEventID() EventIDString {
	return e.EventID
}

// HasOccurredAt returns when this event occurred.
func (e PatronCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PatronCreated) IsErrorEvent() bool {
	return false
}

// HasPatronID returns the patron this event belongs to.
func (e PatronCreated) HasPatronID() PatronIDString {
	return e.PatronID
}
