// Package duplicatehold contains the compensation for hold races: when the
// choreography detects that two patrons hold the same book copy, the patron
// that lost the race gets their hold cancelled again.
package duplicatehold

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/command/cancelinghold"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const subscriberName = "duplicatehold.Compensation"

// CancelsHolds defines the interface needed by the Compensation to cancel the losing hold.
type CancelsHolds interface {
	Handle(ctx context.Context, command cancelinghold.Command) error
}

// EventSubscriber defines the interface needed to register the Compensation on the event bus.
type EventSubscriber interface {
	Subscribe(eventType string, subscriberName string, handler shell.EventHandlerFunc)
}

// Compensation reacts to BookDuplicateHoldFound by cancelling the hold of the
// second patron, i.e. the one the book copy does not name as its holder.
//
// The cancel outcome is a BookHoldCancelled or BookHoldCancellingFailed event
// published by the cancel-hold handler; this type adds nothing on top.
type Compensation struct {
	cancelHold CancelsHolds
}

// NewCompensation creates a new Compensation.
func NewCompensation(cancelHold CancelsHolds) Compensation {
	return Compensation{
		cancelHold: cancelHold,
	}
}

// SubscribeTo registers the Compensation for BookDuplicateHoldFound events.
func (c Compensation) SubscribeTo(subscriber EventSubscriber) {
	subscriber.Subscribe(core.BookDuplicateHoldFoundEventType, subscriberName, c.HandleBookDuplicateHoldFound)
}

// HandleBookDuplicateHoldFound cancels the losing patron's hold.
func (c Compensation) HandleBookDuplicateHoldFound(ctx context.Context, envelope shell.EventEnvelope) error {
	event, ok := envelope.DomainEvent.(core.BookDuplicateHoldFound)
	if !ok {
		return fmt.Errorf("unexpected event type %T", envelope.DomainEvent)
	}

	patronID, err := uuid.Parse(event.SecondPatronID)
	if err != nil {
		return fmt.Errorf("invalid patron id %q: %w", event.SecondPatronID, err)
	}

	bookID, err := uuid.Parse(event.BookID)
	if err != nil {
		return fmt.Errorf("invalid book id %q: %w", event.BookID, err)
	}

	return c.cancelHold.Handle(ctx, cancelinghold.BuildCommand(patronID, bookID, event.OccurredAt))
}
