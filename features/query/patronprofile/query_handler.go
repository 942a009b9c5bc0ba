package patronprofile

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/core"
)

// ProfileStorage defines the interface needed by the QueryHandler to load profiles.
// Load returns shell.ErrPatronNotFound for unknown patrons.
type ProfileStorage interface {
	LoadProfile(ctx context.Context, patronID core.PatronIDString) (PatronProfile, error)
}

// QueryHandler answers patron profile queries from the read model kept by the
// Postgres store; it adds no logic beyond delegation and exists to keep the
// feature slice shape consistent with the command side.
type QueryHandler struct {
	profiles ProfileStorage
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(profiles ProfileStorage) QueryHandler {
	return QueryHandler{
		profiles: profiles,
	}
}

// Handle executes the patron profile query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (PatronProfile, error) {
	return h.profiles.LoadProfile(ctx, query.PatronID.String())
}
