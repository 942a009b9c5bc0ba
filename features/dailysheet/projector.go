package dailysheet

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const subscriberName = "dailysheet.Projector"

// EventSubscriber defines the interface needed to register the Projector on the event bus.
type EventSubscriber interface {
	Subscribe(eventType string, subscriberName string, handler shell.EventHandlerFunc)
}

// Projector keeps the reconciliation sheets current by routing the hold and
// checkout lifecycle events into the DailySheet storage.
type Projector struct {
	sheet DailySheet
}

// NewProjector creates a new Projector.
func NewProjector(sheet DailySheet) Projector {
	return Projector{
		sheet: sheet,
	}
}

// SubscribeTo registers the Projector for every event type it reacts to.
func (p Projector) SubscribeTo(subscriber EventSubscriber) {
	subscriber.Subscribe(core.BookPlacedOnHoldEventType, subscriberName, p.handle)
	subscriber.Subscribe(core.BookHoldCancelledEventType, subscriberName, p.handle)
	subscriber.Subscribe(core.BookHoldExpiredEventType, subscriberName, p.handle)
	subscriber.Subscribe(core.BookCheckedOutEventType, subscriberName, p.handle)
	subscriber.Subscribe(core.BookReturnedEventType, subscriberName, p.handle)
	subscriber.Subscribe(core.OverdueCheckoutRegisteredEventType, subscriberName, p.handle)
}

func (p Projector) handle(ctx context.Context, envelope shell.EventEnvelope) error {
	switch event := envelope.DomainEvent.(type) {
	case core.BookPlacedOnHold:
		return p.sheet.RegisterPlacedOnHold(ctx, event)

	case core.BookHoldCancelled:
		return p.sheet.RegisterHoldCancelled(ctx, event)

	case core.BookHoldExpired:
		return p.sheet.RegisterHoldExpired(ctx, event)

	case core.BookCheckedOut:
		return p.sheet.RegisterCheckedOut(ctx, event)

	case core.BookReturned:
		return p.sheet.RegisterReturned(ctx, event)

	case core.OverdueCheckoutRegistered:
		return p.sheet.RegisterOverdueRegistered(ctx, event)

	default:
		return fmt.Errorf("unexpected event type %T", envelope.DomainEvent)
	}
}
