package returningbook

import (
	"context"
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

// CommandHandler orchestrates the return-book workflow: Load -> Decide -> Publish.
// Returning always succeeds once the book copy is confirmed to be checked out
// by this patron; the published BookReturned event also clears a matching
// overdue checkout from the patron.
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

// Handle executes the return-book command.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	patron, err := h.patrons.Load(ctx, command.PatronID.String())
	if err != nil {
		return err
	}

	book, err := h.books.Load(ctx, command.BookID.String())
	if err != nil {
		return err
	}

	checkedOutBook, ok := book.(core.CheckedOutBook)
	if !ok {
		return fmt.Errorf("%w: book %s is not checked out", core.ErrInvalidState, command.BookID)
	}

	if checkedOutBook.ByPatron != command.PatronID.String() {
		return fmt.Errorf("%w: book %s is checked out by another patron", core.ErrInvalidState, command.BookID)
	}

	result := patron.ReturnBook(checkedOutBook, command.OccurredAt)

	if result.HasEventsToPublish() {
		if err = h.bus.PublishAll(ctx, result.Events, shell.NewCommandMetadata()); err != nil {
			return err
		}
	}

	return result.HasError()
}
