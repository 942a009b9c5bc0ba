// Package patronevents contains the choreography glue between the Patron and
// Book aggregates: it subscribes to the patron lifecycle events, applies them
// as deltas to patron storage and transitions the affected book copy.
//
// The book transition side is where concurrent hold races surface: when a
// BookPlacedOnHold event arrives for a copy that is already held by a
// different patron, the coordinator publishes BookDuplicateHoldFound instead
// of touching the copy, and the duplicate-hold compensation takes over.
//
// Events that arrive late or out of order can name a copy whose state has
// moved on. Those deliveries leave the copy untouched; only a copy that does
// not exist at all is treated as a data inconsistency.
package patronevents

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const subscriberName = "patronevents.Coordinator"

// BookStorage defines the interface needed by the Coordinator for book storage operations.
type BookStorage interface {
	Load(ctx context.Context, bookID core.BookIDString) (core.Book, error)
	Save(ctx context.Context, book core.Book) error
}

// PatronStorage defines the interface needed by the Coordinator for patron storage operations.
type PatronStorage interface {
	Create(ctx context.Context, event core.PatronCreated) error
	Apply(ctx context.Context, event core.PatronEvent) error
}

// EventPublisher defines the interface needed by the Coordinator to publish follow-up events.
type EventPublisher interface {
	Publish(ctx context.Context, envelope shell.EventEnvelope) error
}

// EventSubscriber defines the interface needed to register the Coordinator on the event bus.
type EventSubscriber interface {
	Subscribe(eventType string, subscriberName string, handler shell.EventHandlerFunc)
}

// Coordinator reacts to patron lifecycle events.
type Coordinator struct {
	books   BookStorage
	patrons PatronStorage
	bus     EventPublisher
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(books BookStorage, patrons PatronStorage, bus EventPublisher) Coordinator {
	return Coordinator{
		books:   books,
		patrons: patrons,
		bus:     bus,
	}
}

// SubscribeTo registers the Coordinator for every event type it reacts to.
func (c Coordinator) SubscribeTo(subscriber EventSubscriber) {
	subscriber.Subscribe(core.PatronCreatedEventType, subscriberName, c.HandlePatronCreated)
	subscriber.Subscribe(core.BookPlacedOnHoldEventType, subscriberName, c.HandleBookPlacedOnHold)
	subscriber.Subscribe(core.BookHoldCancelledEventType, subscriberName, c.HandleBookHoldCancelled)
	subscriber.Subscribe(core.BookHoldExpiredEventType, subscriberName, c.HandleBookHoldExpired)
	subscriber.Subscribe(core.BookCheckedOutEventType, subscriberName, c.HandleBookCheckedOut)
	subscriber.Subscribe(core.BookReturnedEventType, subscriberName, c.HandleBookReturned)
	subscriber.Subscribe(core.OverdueCheckoutRegisteredEventType, subscriberName, c.HandleOverdueCheckoutRegistered)
}

// HandlePatronCreated stores the new patron.
func (c Coordinator) HandlePatronCreated(ctx context.Context, envelope shell.EventEnvelope) error {
	event, err := eventAs[core.PatronCreated](envelope)
	if err != nil {
		return err
	}

	return c.patrons.Create(ctx, event)
}

// HandleBookPlacedOnHold applies the hold to the patron and transitions the
// book copy to on-hold, or detects a duplicate hold.
//
// The patron delta is applied first: if the copy turns out to be held by a
// different patron already, this patron lost the race and must have a hold
// entry for the compensation to cancel.
func (c Coordinator) HandleBookPlacedOnHold(ctx context.Context, envelope shell.EventEnvelope) error {
	event, err := eventAs[core.BookPlacedOnHold](envelope)
	if err != nil {
		return err
	}

	if err = c.patrons.Apply(ctx, event); err != nil {
		return err
	}

	book, err := c.loadBook(ctx, event.BookID, event)
	if err != nil {
		return err
	}

	switch b := book.(type) {
	case core.AvailableBook:
		onHold, transitionErr := b.OnPlacedOnHold(event)
		if transitionErr != nil {
			return transitionErr
		}

		return c.books.Save(ctx, onHold)

	case core.BookOnHold:
		if b.ByPatron == event.PatronID {
			return nil // redelivery of the winning hold
		}

		duplicateFound := core.BuildBookDuplicateHoldFound(
			event.BookID, b.ByPatron, event.PatronID, event.OccurredAt)

		return c.bus.Publish(ctx, shell.BuildEventEnvelope(duplicateFound, envelope.EventMetadata.CausedBy()))

	default:
		return nil // stale hold for a copy that was checked out in the meantime
	}
}

// HandleBookHoldCancelled removes the hold from the patron and releases the
// book copy if this patron is its current holder. A copy naming a different
// holder is left alone: that is the losing side of a duplicate hold being
// compensated.
func (c Coordinator) HandleBookHoldCancelled(ctx context.Context, envelope shell.EventEnvelope) error {
	event, err := eventAs[core.BookHoldCancelled](envelope)
	if err != nil {
		return err
	}

	if err = c.patrons.Apply(ctx, event); err != nil {
		return err
	}

	book, err := c.loadBook(ctx, event.BookID, event)
	if err != nil {
		return err
	}

	if b, ok := book.(core.BookOnHold); ok && b.ByPatron == event.PatronID {
		available, transitionErr := b.OnHoldCancelled(event)
		if transitionErr != nil {
			return transitionErr
		}

		return c.books.Save(ctx, available)
	}

	return nil
}

// HandleBookHoldExpired behaves like a cancellation triggered by the clock.
func (c Coordinator) HandleBookHoldExpired(ctx context.Context, envelope shell.EventEnvelope) error {
	event, err := eventAs[core.BookHoldExpired](envelope)
	if err != nil {
		return err
	}

	if err = c.patrons.Apply(ctx, event); err != nil {
		return err
	}

	book, err := c.loadBook(ctx, event.BookID, event)
	if err != nil {
		return err
	}

	if b, ok := book.(core.BookOnHold); ok && b.ByPatron == event.PatronID {
		available, transitionErr := b.OnHoldExpired(event)
		if transitionErr != nil {
			return transitionErr
		}

		return c.books.Save(ctx, available)
	}

	return nil
}

// HandleBookCheckedOut removes the hold from the patron and transitions the
// book copy to checked-out.
func (c Coordinator) HandleBookCheckedOut(ctx context.Context, envelope shell.EventEnvelope) error {
	event, err := eventAs[core.BookCheckedOut](envelope)
	if err != nil {
		return err
	}

	if err = c.patrons.Apply(ctx, event); err != nil {
		return err
	}

	book, err := c.loadBook(ctx, event.BookID, event)
	if err != nil {
		return err
	}

	switch b := book.(type) {
	case core.BookOnHold:
		checkedOut, transitionErr := b.OnCheckedOut(event)
		if transitionErr != nil {
			return transitionErr
		}

		return c.books.Save(ctx, checkedOut)

	default:
		return nil // already checked out or released again, the event is stale
	}
}

// HandleBookReturned clears a matching overdue checkout from the patron and
// transitions the book copy back to available.
func (c Coordinator) HandleBookReturned(ctx context.Context, envelope shell.EventEnvelope) error {
	event, err := eventAs[core.BookReturned](envelope)
	if err != nil {
		return err
	}

	if err = c.patrons.Apply(ctx, event); err != nil {
		return err
	}

	book, err := c.loadBook(ctx, event.BookID, event)
	if err != nil {
		return err
	}

	switch b := book.(type) {
	case core.CheckedOutBook:
		available, transitionErr := b.OnReturned(event)
		if transitionErr != nil {
			return transitionErr
		}

		return c.books.Save(ctx, available)

	default:
		return nil // already available again or held by someone else, the event is stale
	}
}

// HandleOverdueCheckoutRegistered registers the overdue checkout on the patron.
// The book copy stays checked out until it is returned.
func (c Coordinator) HandleOverdueCheckoutRegistered(ctx context.Context, envelope shell.EventEnvelope) error {
	event, err := eventAs[core.OverdueCheckoutRegistered](envelope)
	if err != nil {
		return err
	}

	return c.patrons.Apply(ctx, event)
}

func (c Coordinator) loadBook(ctx context.Context, bookID core.BookIDString, event core.DomainEvent) (core.Book, error) {
	book, err := c.books.Load(ctx, bookID)
	if err != nil {
		if errors.Is(err, shell.ErrBookNotFound) {
			return nil, c.inconsistency(event, err)
		}

		return nil, err
	}

	return book, nil
}

func (c Coordinator) inconsistency(event core.DomainEvent, cause error) error {
	return errors.Join(
		shell.ErrDataInconsistency,
		fmt.Errorf("event %s (%s): %w", event.EventType(), event.HasEventID(), cause),
	)
}

func eventAs[E core.DomainEvent](envelope shell.EventEnvelope) (E, error) {
	event, ok := envelope.DomainEvent.(E)
	if !ok {
		var zero E
		return zero, fmt.Errorf("unexpected event type %T", envelope.DomainEvent)
	}

	return event, nil
}
