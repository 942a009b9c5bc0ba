package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the domain.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	// HasEventID returns the unique identifier of this event instance.
	HasEventID() EventIDString

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// IsErrorEvent returns true if this event represents an error or failure condition.
	IsErrorEvent() bool
}

// PatronEvent is a DomainEvent that originates from, or is applied to, a Patron aggregate.
type PatronEvent interface {
	DomainEvent

	// HasPatronID returns the patron this event belongs to.
	HasPatronID() PatronIDString
}
