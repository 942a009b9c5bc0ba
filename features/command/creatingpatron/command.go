package creatingpatron

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/core"
)

const (
	commandType = "CreatePatron"
)

// Command represents the intent to register a new patron with the library.
type Command struct {
	PatronID   uuid.UUID
	PatronType core.PatronType
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// Returns an error for an unknown patron type.
func BuildCommand(patronID uuid.UUID, patronType core.PatronType, occurredAt time.Time) (Command, error) {
	if patronType != core.PatronTypeRegular && patronType != core.PatronTypeResearcher {
		return Command{}, fmt.Errorf("unknown patron type: %q", patronType)
	}

	return Command{
		PatronID:   patronID,
		PatronType: patronType,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}, nil
}
