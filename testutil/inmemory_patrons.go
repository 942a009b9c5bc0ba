package testutil

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// InMemoryPatrons is an in-memory implementation of the patron storage
// contract. Like the Postgres implementation it applies patron events as
// deltas and deduplicates them by event ID, so Apply is idempotent.
type InMemoryPatrons struct {
	mu            sync.RWMutex
	patrons       map[core.PatronIDString]core.Patron
	appliedEvents map[core.EventIDString]struct{}
	LoadErr       error
	ApplyErr      error
}

// NewInMemoryPatrons creates an empty in-memory patron store.
func NewInMemoryPatrons() *InMemoryPatrons {
	return &InMemoryPatrons{
		patrons:       make(map[core.PatronIDString]core.Patron),
		appliedEvents: make(map[core.EventIDString]struct{}),
	}
}

// Load returns the stored patron or shell.ErrPatronNotFound.
func (s *InMemoryPatrons) Load(_ context.Context, patronID core.PatronIDString) (core.Patron, error) {
	if s.LoadErr != nil {
		return core.Patron{}, s.LoadErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	patron, ok := s.patrons[patronID]
	if !ok {
		return core.Patron{}, shell.ErrPatronNotFound
	}

	return patron, nil
}

// Create stores a new patron derived from the PatronCreated event.
// Creating the same patron twice is a no-op.
func (s *InMemoryPatrons) Create(_ context.Context, event core.PatronCreated) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patrons[event.PatronID]; ok {
		return nil
	}

	s.patrons[event.PatronID] = core.BuildPatron(
		event.PatronID,
		event.PatronType,
		core.EmptyPatronHolds(),
		core.EmptyOverdueCheckouts(),
		core.DefaultPlacingOnHoldPolicies(),
	)

	return nil
}

// Apply transforms the stored patron with the given event, once per event ID.
func (s *InMemoryPatrons) Apply(_ context.Context, event core.PatronEvent) error {
	if s.ApplyErr != nil {
		return s.ApplyErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appliedEvents[event.HasEventID()]; ok {
		return nil
	}

	patron, ok := s.patrons[event.HasPatronID()]
	if !ok {
		return shell.ErrPatronNotFound
	}

	s.patrons[event.HasPatronID()] = core.TransformPatron(patron, event)
	s.appliedEvents[event.HasEventID()] = struct{}{}

	return nil
}

// GivenPatron seeds the store with a patron, bypassing the event flow.
func (s *InMemoryPatrons) GivenPatron(patron core.Patron) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.patrons[patron.PatronID] = patron
}
