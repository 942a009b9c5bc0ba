package shell

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/core"
)

// EventHandlerFunc handles a single event envelope delivered by the bus.
type EventHandlerFunc func(ctx context.Context, envelope EventEnvelope) error

// EventBusOption configures the event bus.
type EventBusOption func(bus *EventBus)

// WithLogger configures basic logging for the event bus.
func WithLogger(logger Logger) EventBusOption {
	return func(bus *EventBus) {
		bus.logger = logger
	}
}

// WithContextualLogger configures context-aware logging for the event bus.
func WithContextualLogger(contextualLogger ContextualLogger) EventBusOption {
	return func(bus *EventBus) {
		bus.contextualLogger = contextualLogger
	}
}

// WithJournal configures an event journal that records every published event
// before it is dispatched to subscribers.
func WithJournal(journal AppendsJournalEvents) EventBusOption {
	return func(bus *EventBus) {
		bus.journal = journal
	}
}

type subscription struct {
	subscriberName string
	handler        EventHandlerFunc
}

// EventBus is the in-process broker that connects the command handlers with
// the event handlers reacting to their events.
//
// Dispatch is synchronous and sequential: Publish invokes every subscriber for
// the event type in subscription order before returning. A subscriber error is
// logged and does not stop delivery to the remaining subscribers, and does not
// fail the publish. This gives each published event at-least-once in-process
// delivery while keeping event handlers isolated from each other.
type EventBus struct {
	mu               sync.RWMutex
	subscriptions    map[string][]subscription
	journal          AppendsJournalEvents
	logger           Logger
	contextualLogger ContextualLogger
}

// NewEventBus creates an event bus, applying the supplied options.
func NewEventBus(opts ...EventBusOption) *EventBus {
	bus := &EventBus{
		subscriptions: make(map[string][]subscription),
	}

	for _, opt := range opts {
		opt(bus)
	}

	return bus
}

// Subscribe registers a handler for one event type. The subscriber name only
// shows up in logs when the handler fails.
func (b *EventBus) Subscribe(eventType string, subscriberName string, handler EventHandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{
		subscriberName: subscriberName,
		handler:        handler,
	})
}

// Publish records the event in the journal (when configured) and dispatches it
// to all subscribers of its event type.
func (b *EventBus) Publish(ctx context.Context, envelope EventEnvelope) error {
	if b.journal != nil {
		storableEvent, err := StorableEventFrom(envelope.DomainEvent, envelope.EventMetadata)
		if err != nil {
			return errors.Join(ErrPublishFailed, err)
		}

		if err = b.journal.Append(ctx, storableEvent); err != nil {
			return errors.Join(ErrPublishFailed, err)
		}
	}

	b.mu.RLock()
	subscribers := b.subscriptions[envelope.DomainEvent.EventType()]
	b.mu.RUnlock()

	for _, sub := range subscribers {
		if err := sub.handler(ctx, envelope); err != nil {
			b.logHandlerError(ctx, sub.subscriberName, envelope, err)
		}
	}

	return nil
}

// PublishAll publishes multiple events sharing the same metadata, in order.
func (b *EventBus) PublishAll(ctx context.Context, events core.DomainEvents, metadata EventMetadata) error {
	for _, event := range events {
		if err := b.Publish(ctx, BuildEventEnvelope(event, metadata)); err != nil {
			return err
		}
	}

	return nil
}

func (b *EventBus) logHandlerError(ctx context.Context, subscriberName string, envelope EventEnvelope, err error) {
	args := []any{
		LogAttrSubscriber, subscriberName,
		LogAttrEventType, envelope.DomainEvent.EventType(),
		LogAttrEventID, envelope.DomainEvent.HasEventID(),
		LogAttrError, err.Error(),
	}

	if b.contextualLogger != nil {
		b.contextualLogger.ErrorContext(ctx, LogMsgEventHandlerFailed, args...)
	} else if b.logger != nil {
		b.logger.Error(LogMsgEventHandlerFailed, args...)
	}
}
