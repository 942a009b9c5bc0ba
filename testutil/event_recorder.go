package testutil

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// EventRecorder is a publisher double that records every published envelope.
type EventRecorder struct {
	mu         sync.Mutex
	envelopes  shell.EventEnvelopes
	PublishErr error
}

// NewEventRecorder creates an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Publish records a single envelope.
func (r *EventRecorder) Publish(_ context.Context, envelope shell.EventEnvelope) error {
	if r.PublishErr != nil {
		return r.PublishErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.envelopes = append(r.envelopes, envelope)

	return nil
}

// PublishAll records multiple events sharing the same metadata, in order.
func (r *EventRecorder) PublishAll(ctx context.Context, events core.DomainEvents, metadata shell.EventMetadata) error {
	for _, event := range events {
		if err := r.Publish(ctx, shell.BuildEventEnvelope(event, metadata)); err != nil {
			return err
		}
	}

	return nil
}

// RecordedEvents returns the domain events of all recorded envelopes, in publish order.
func (r *EventRecorder) RecordedEvents() core.DomainEvents {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make(core.DomainEvents, 0, len(r.envelopes))
	for _, envelope := range r.envelopes {
		events = append(events, envelope.DomainEvent)
	}

	return events
}

// RecordedEnvelopes returns all recorded envelopes, in publish order.
func (r *EventRecorder) RecordedEnvelopes() shell.EventEnvelopes {
	r.mu.Lock()
	defer r.mu.Unlock()

	envelopes := make(shell.EventEnvelopes, len(r.envelopes))
	copy(envelopes, r.envelopes)

	return envelopes
}

// Reset discards all recorded envelopes.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.envelopes = nil
}
