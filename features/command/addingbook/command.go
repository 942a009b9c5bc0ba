package addingbook

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a new book copy to the catalogue.
type Command struct {
	BookID     uuid.UUID
	BookType   core.BookType
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// Returns an error for an unknown book type.
func BuildCommand(bookID uuid.UUID, bookType core.BookType, occurredAt time.Time) (Command, error) {
	if bookType != core.BookTypeCirculating && bookType != core.BookTypeRestricted {
		return Command{}, fmt.Errorf("unknown book type: %q", bookType)
	}

	return Command{
		BookID:     bookID,
		BookType:   bookType,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}, nil
}
