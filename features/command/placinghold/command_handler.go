package placinghold

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const (
	reasonBookNotFound     = "book not found"
	reasonBookNotAvailable = "book is not available for holding"
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

// CommandHandler orchestrates the place-hold workflow:
// Load -> Decide -> Publish.
//
// The handler does not write any state itself. State changes flow through the
// published events: the subscribed event handlers transition the book copy and
// apply the hold to the patron. Policy rejections are published as
// BookHoldFailed events and additionally reported as an error to the caller.
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

// Handle executes the place-hold command.
//
// A book already held by the requesting patron makes this an idempotent no-op.
// A book that is held by another patron or checked out yields a BookHoldFailed
// event; races that slip past this check are compensated later by the
// duplicate-hold detection.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	patron, err := h.patrons.Load(ctx, command.PatronID.String())
	if err != nil {
		return err
	}

	book, err := h.books.Load(ctx, command.BookID.String())
	if err != nil {
		if errors.Is(err, shell.ErrBookNotFound) {
			return h.publishHoldFailed(ctx, command, reasonBookNotFound, err)
		}

		return err
	}

	var availableBook core.AvailableBook

	switch b := book.(type) {
	case core.AvailableBook:
		availableBook = b

	case core.BookOnHold:
		if b.ByPatron == command.PatronID.String() {
			return nil // already held by this patron
		}

		return h.publishHoldFailed(ctx, command, reasonBookNotAvailable,
			fmt.Errorf("book %s is already on hold", command.BookID))

	case core.CheckedOutBook:
		return h.publishHoldFailed(ctx, command, reasonBookNotAvailable,
			fmt.Errorf("book %s is checked out", command.BookID))

	default:
		return fmt.Errorf("%w: unexpected book state %T", shell.ErrDataInconsistency, book)
	}

	result := patron.PlaceOnHold(availableBook, command.HoldDuration(), command.OccurredAt)

	if result.HasEventsToPublish() {
		if err = h.bus.PublishAll(ctx, result.Events, shell.NewCommandMetadata()); err != nil {
			return err
		}
	}

	return result.HasError()
}

func (h CommandHandler) publishHoldFailed(ctx context.Context, command Command, reason string, cause error) error {
	event := core.BuildBookHoldFailed(
		command.PatronID.String(), command.BookID.String(), reason, command.OccurredAt)

	if err := h.bus.PublishAll(ctx, core.DomainEvents{event}, shell.NewCommandMetadata()); err != nil {
		return err
	}

	return errors.Join(core.ErrHoldRejected, cause)
}
