package addingbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// BookStorage defines the interface needed by the CommandHandler for book storage operations.
type BookStorage interface {
	Load(ctx context.Context, bookID core.BookIDString) (core.Book, error)
	Save(ctx context.Context, book core.Book) error
}

// CommandHandler adds new book copies to the catalogue. A copy enters the
// lifecycle as AvailableBook. Adding a copy that already exists is an
// idempotent no-op, so the stored lifecycle state of the copy is never reset.
type CommandHandler struct {
	books BookStorage
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(books BookStorage) CommandHandler {
	return CommandHandler{
		books: books,
	}
}

// Handle executes the add-book command.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	_, err := h.books.Load(ctx, command.BookID.String())

	switch {
	case err == nil:
		return nil // book exists, nothing to do

	case errors.Is(err, shell.ErrBookNotFound):
		return h.books.Save(ctx, core.AvailableBook{
			BookID:   command.BookID.String(),
			BookType: command.BookType,
		})

	default:
		return err
	}
}
