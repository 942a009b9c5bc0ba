package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.PatronCreatedEventType:
		return unmarshalDomainEvent[core.PatronCreated](storableEvent.PayloadJSON)

	case core.BookPlacedOnHoldEventType:
		return unmarshalDomainEvent[core.BookPlacedOnHold](storableEvent.PayloadJSON)

	case core.MaximumNumberOfHoldsReachedEventType:
		return unmarshalDomainEvent[core.MaximumNumberOfHoldsReached](storableEvent.PayloadJSON)

	case core.BookHoldFailedEventType:
		return unmarshalDomainEvent[core.BookHoldFailed](storableEvent.PayloadJSON)

	case core.BookHoldCancelledEventType:
		return unmarshalDomainEvent[core.BookHoldCancelled](storableEvent.PayloadJSON)

	case core.BookHoldCancellingFailedEventType:
		return unmarshalDomainEvent[core.BookHoldCancellingFailed](storableEvent.PayloadJSON)

	case core.BookHoldExpiredEventType:
		return unmarshalDomainEvent[core.BookHoldExpired](storableEvent.PayloadJSON)

	case core.BookCheckedOutEventType:
		return unmarshalDomainEvent[core.BookCheckedOut](storableEvent.PayloadJSON)

	case core.BookCheckingOutFailedEventType:
		return unmarshalDomainEvent[core.BookCheckingOutFailed](storableEvent.PayloadJSON)

	case core.BookReturnedEventType:
		return unmarshalDomainEvent[core.BookReturned](storableEvent.PayloadJSON)

	case core.OverdueCheckoutRegisteredEventType:
		return unmarshalDomainEvent[core.OverdueCheckoutRegistered](storableEvent.PayloadJSON)

	case core.BookDuplicateHoldFoundEventType:
		return unmarshalDomainEvent[core.BookDuplicateHoldFound](storableEvent.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}
}

func unmarshalDomainEvent[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(E)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
