package shell

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/core"
)

// StoresBooks defines the storage contract for the Book aggregate.
// Load returns ErrBookNotFound when no copy with this ID exists.
type StoresBooks interface {
	Load(ctx context.Context, bookID core.BookIDString) (core.Book, error)
	Save(ctx context.Context, book core.Book) error
}

// StoresPatrons defines the storage contract for the Patron aggregate.
//
// Patron state is persisted as deltas derived from patron events, so Apply
// must be idempotent per event ID: applying the same event twice leaves the
// stored state unchanged. Load returns ErrPatronNotFound when no patron with
// this ID exists.
type StoresPatrons interface {
	Load(ctx context.Context, patronID core.PatronIDString) (core.Patron, error)
	Create(ctx context.Context, event core.PatronCreated) error
	Apply(ctx context.Context, event core.PatronEvent) error
}

// PublishesEvents hands domain events to the event bus for dispatch to
// subscribed event handlers.
type PublishesEvents interface {
	Publish(ctx context.Context, envelope EventEnvelope) error
	PublishAll(ctx context.Context, events core.DomainEvents, metadata EventMetadata) error
}

// AppendsJournalEvents persists serialized domain events to the event journal.
// Append must be idempotent per event ID.
type AppendsJournalEvents interface {
	Append(ctx context.Context, storableEvent StorableEvent) error
}
