package placinghold

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/core"
)

const (
	commandType = "PlaceHold"
)

// Command represents the intent of a patron to place a hold on a book copy.
// NumberOfDays is nil for an open-ended hold.
type Command struct {
	PatronID     uuid.UUID
	BookID       uuid.UUID
	NumberOfDays *core.NumberOfDays
	OccurredAt   core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a Command for a close-ended hold.
// Returns an error if numberOfDays is not positive.
func BuildCommand(patronID uuid.UUID, bookID uuid.UUID, numberOfDays int, occurredAt time.Time) (Command, error) {
	days, err := core.NewNumberOfDays(numberOfDays)
	if err != nil {
		return Command{}, err
	}

	return Command{
		PatronID:     patronID,
		BookID:       bookID,
		NumberOfDays: &days,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}, nil
}

// BuildCommandWithOpenEndedHold creates a Command for a hold without an expiry.
func BuildCommandWithOpenEndedHold(patronID uuid.UUID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// HoldDuration derives the hold duration of this command.
func (c Command) HoldDuration() core.HoldDuration {
	if c.NumberOfDays == nil {
		return core.OpenEndedHoldDuration(c.OccurredAt)
	}

	return core.CloseEndedHoldDuration(c.OccurredAt, *c.NumberOfDays)
}
