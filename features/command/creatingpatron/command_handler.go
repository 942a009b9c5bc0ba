package creatingpatron

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// PatronStorage defines the interface needed by the CommandHandler for patron storage operations.
type PatronStorage interface {
	Load(ctx context.Context, patronID core.PatronIDString) (core.Patron, error)
}

// EventPublisher defines the interface needed by the CommandHandler to publish the decision outcome.
type EventPublisher interface {
	PublishAll(ctx context.Context, events core.DomainEvents, metadata shell.EventMetadata) error
}

// CommandHandler registers new patrons. Creating a patron that already exists
// is an idempotent no-op. The patron record itself is written by the event
// handler reacting to PatronCreated.
type CommandHandler struct {
	patrons PatronStorage
	bus     EventPublisher
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(patrons PatronStorage, bus EventPublisher) CommandHandler {
	return CommandHandler{
		patrons: patrons,
		bus:     bus,
	}
}

// Handle executes the create-patron command.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	_, err := h.patrons.Load(ctx, command.PatronID.String())

	switch {
	case err == nil:
		return nil // patron exists, nothing to do

	case errors.Is(err, shell.ErrPatronNotFound):
		event := core.BuildPatronCreated(command.PatronID, command.PatronType, command.OccurredAt)
		return h.bus.PublishAll(ctx, core.DomainEvents{event}, shell.NewCommandMetadata())

	default:
		return err
	}
}
