package checkingoutbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/core"
)

const (
	commandType = "CheckOutBook"
)

// Command represents the intent of a patron to check out a book copy they hold.
type Command struct {
	PatronID     uuid.UUID
	BookID       uuid.UUID
	NumberOfDays core.NumberOfDays
	OccurredAt   core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// Returns an error if numberOfDays is not positive or exceeds the checkout maximum.
func BuildCommand(patronID uuid.UUID, bookID uuid.UUID, numberOfDays int, occurredAt time.Time) (Command, error) {
	days, err := core.NewNumberOfDays(numberOfDays)
	if err != nil {
		return Command{}, err
	}

	// validates the duration cap right away; the duration itself is rebuilt in the handler
	if _, err = core.NewCheckoutDuration(occurredAt, days); err != nil {
		return Command{}, err
	}

	return Command{
		PatronID:     patronID,
		BookID:       bookID,
		NumberOfDays: days,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}, nil
}

// CheckoutDuration derives the checkout duration of this command.
func (c Command) CheckoutDuration() (core.CheckoutDuration, error) {
	return core.NewCheckoutDuration(c.OccurredAt, c.NumberOfDays)
}
