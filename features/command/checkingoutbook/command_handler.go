package checkingoutbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const (
	reasonBookNotFound = "book not found"
	reasonBookNotHeld  = "book is not on hold by this patron"
)

// BookStorage defines the interface needed by the CommandHandler for book storage operations.
type BookStorage interface {
	Load(ctx context.Context, bookID core.BookIDString) (core.Book, error)
}

// PatronStorage defines the interface needed by the CommandHandler for patron storage operations.
type PatronStorage interface {
	Load(ctx context.Context, patronID core.PatronIDString) (core.Patron, error)
}

// EventPublisher defines the interface needed by the CommandHandler to publish the decision outcome.
type EventPublisher interface {
	PublishAll(ctx context.Context, events core.DomainEvents, metadata shell.EventMetadata) error
}

// CommandHandler orchestrates the check-out workflow: Load -> Decide -> Publish.
// Only the patron currently holding the book copy can check it out.
type CommandHandler struct {
	books   BookStorage
	patrons PatronStorage
	bus     EventPublisher
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(books BookStorage, patrons PatronStorage, bus EventPublisher) CommandHandler {
	return CommandHandler{
		books:   books,
		patrons: patrons,
		bus:     bus,
	}
}

// Handle executes the check-out command.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	patron, err := h.patrons.Load(ctx, command.PatronID.String())
	if err != nil {
		return err
	}

	book, err := h.books.Load(ctx, command.BookID.String())
	if err != nil {
		if errors.Is(err, shell.ErrBookNotFound) {
			return h.publishCheckingOutFailed(ctx, command, reasonBookNotFound, err)
		}

		return err
	}

	bookOnHold, ok := book.(core.BookOnHold)
	if !ok || bookOnHold.ByPatron != command.PatronID.String() {
		return h.publishCheckingOutFailed(ctx, command, reasonBookNotHeld,
			fmt.Errorf("%w: %s", core.ErrBookNotHeld, command.BookID))
	}

	duration, err := command.CheckoutDuration()
	if err != nil {
		return err
	}

	result := patron.CheckOut(bookOnHold, duration, command.OccurredAt)

	if result.HasEventsToPublish() {
		if err = h.bus.PublishAll(ctx, result.Events, shell.NewCommandMetadata()); err != nil {
			return err
		}
	}

	return result.HasError()
}

func (h CommandHandler) publishCheckingOutFailed(ctx context.Context, command Command, reason string, cause error) error {
	event := core.BuildBookCheckingOutFailed(
		command.PatronID.String(), command.BookID.String(), reason, command.OccurredAt)

	if err := h.bus.PublishAll(ctx, core.DomainEvents{event}, shell.NewCommandMetadata()); err != nil {
		return errors.Join(cause, err)
	}

	return cause
}
