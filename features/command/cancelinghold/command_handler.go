package cancelinghold

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
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

// CommandHandler orchestrates the cancel-hold workflow: Load -> Decide -> Publish.
//
// Every failure is published as a BookHoldCancellingFailed event with a
// classified reason, because the duplicate-hold compensation listens for these
// events and must be able to tell a permanently lost cause (BookNotFound,
// PatronNotFound, BookNotHeld) from a transient one (System).
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

// Handle executes the cancel-hold command.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	book, err := h.books.Load(ctx, command.BookID.String())
	if err != nil {
		if errors.Is(err, shell.ErrBookNotFound) {
			return h.publishCancellingFailed(ctx, command, core.CancellingFailedBookNotFound, err)
		}

		return h.publishCancellingFailed(ctx, command, core.CancellingFailedSystem, err)
	}

	patron, err := h.patrons.Load(ctx, command.PatronID.String())
	if err != nil {
		if errors.Is(err, shell.ErrPatronNotFound) {
			return h.publishCancellingFailed(ctx, command, core.CancellingFailedPatronNotFound, err)
		}

		return h.publishCancellingFailed(ctx, command, core.CancellingFailedSystem, err)
	}

	// The decision is based on the patron's own hold entry, not on which patron
	// the book copy currently names as its holder. After a lost duplicate-hold
	// race the book names the winning patron, but the losing patron still has a
	// hold entry that must be cancellable.
	bookOnHold, ok := book.(core.BookOnHold)
	if !ok {
		return h.publishCancellingFailed(ctx, command, core.CancellingFailedBookNotHeld,
			fmt.Errorf("%w: %s", core.ErrBookNotHeld, command.BookID))
	}

	result := patron.CancelHold(bookOnHold, command.OccurredAt)

	if result.HasEventsToPublish() {
		if err = h.bus.PublishAll(ctx, result.Events, shell.NewCommandMetadata()); err != nil {
			return err
		}
	}

	return result.HasError()
}

func (h CommandHandler) publishCancellingFailed(
	ctx context.Context,
	command Command,
	reason core.CancellingFailedReason,
	cause error,
) error {

	event := core.BuildBookHoldCancellingFailed(
		command.PatronID.String(), command.BookID.String(), reason, cause.Error(), command.OccurredAt)

	if err := h.bus.PublishAll(ctx, core.DomainEvents{event}, shell.NewCommandMetadata()); err != nil {
		return errors.Join(cause, err)
	}

	return cause
}
