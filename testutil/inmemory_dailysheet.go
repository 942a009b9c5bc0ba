package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/dailysheet"
)

type holdRow struct {
	eventID  core.EventIDString
	bookID   core.BookIDString
	patronID core.PatronIDString
	holdTill *time.Time
	status   string
}

type checkoutRow struct {
	eventID           core.EventIDString
	bookID            core.BookIDString
	patronID          core.PatronIDString
	till              time.Time
	status            string
	overdueRegistered bool
}

// InMemoryDailySheet is an in-memory implementation of the DailySheet storage
// contract with the same semantics as the Postgres implementation: each row
// carries the ID of the event that created it and is inserted at most once per
// event ID, status transitions are keyed by book, patron, and current status.
type InMemoryDailySheet struct {
	mu        sync.Mutex
	holds     []*holdRow
	checkouts []*checkoutRow
	QueryErr  error
}

// NewInMemoryDailySheet creates an empty in-memory daily sheet.
func NewInMemoryDailySheet() *InMemoryDailySheet {
	return &InMemoryDailySheet{}
}

// QueryHoldsToExpireSheet returns all active close-ended holds expired before now.
func (s *InMemoryDailySheet) QueryHoldsToExpireSheet(
	_ context.Context,
	now time.Time,
) (dailysheet.HoldsToExpireSheet, error) {

	if s.QueryErr != nil {
		return dailysheet.HoldsToExpireSheet{}, s.QueryErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := dailysheet.HoldsToExpireSheet{}
	for _, row := range s.holds {
		if row.status == "ACTIVE" && row.holdTill != nil && row.holdTill.Before(now) {
			sheet.Rows = append(sheet.Rows, dailysheet.ExpiredHoldRow{
				BookID:   row.bookID,
				PatronID: row.patronID,
				HoldTill: *row.holdTill,
			})
		}
	}

	return sheet, nil
}

// QueryCheckoutsToOverdueSheet returns all checkouts due before now that have
// not been registered as overdue yet.
func (s *InMemoryDailySheet) QueryCheckoutsToOverdueSheet(
	_ context.Context,
	now time.Time,
) (dailysheet.CheckoutsToOverdueSheet, error) {

	if s.QueryErr != nil {
		return dailysheet.CheckoutsToOverdueSheet{}, s.QueryErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := dailysheet.CheckoutsToOverdueSheet{}
	for _, row := range s.checkouts {
		if row.status == "CHECKEDOUT" && !row.overdueRegistered && row.till.Before(now) {
			sheet.Rows = append(sheet.Rows, dailysheet.OverdueCheckoutRow{
				BookID:   row.bookID,
				PatronID: row.patronID,
				Till:     row.till,
			})
		}
	}

	return sheet, nil
}

// RegisterPlacedOnHold inserts an active hold row keyed by the event ID, at most once.
func (s *InMemoryDailySheet) RegisterPlacedOnHold(_ context.Context, event core.BookPlacedOnHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.holds {
		if row.eventID == event.EventID {
			return nil
		}
	}

	s.holds = append(s.holds, &holdRow{
		eventID:  event.EventID,
		bookID:   event.BookID,
		patronID: event.PatronID,
		holdTill: event.HoldTill,
		status:   "ACTIVE",
	})

	return nil
}

// RegisterHoldCancelled marks the active hold row as cancelled.
func (s *InMemoryDailySheet) RegisterHoldCancelled(_ context.Context, event core.BookHoldCancelled) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markHold(event.BookID, event.PatronID, "CANCELLED")

	return nil
}

// RegisterHoldExpired marks the active hold row as expired.
func (s *InMemoryDailySheet) RegisterHoldExpired(_ context.Context, event core.BookHoldExpired) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markHold(event.BookID, event.PatronID, "EXPIRED")

	return nil
}

// RegisterCheckedOut marks the active hold row as checked out and inserts a
// checkout row keyed by the event ID, at most once.
func (s *InMemoryDailySheet) RegisterCheckedOut(_ context.Context, event core.BookCheckedOut) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markHold(event.BookID, event.PatronID, "CHECKEDOUT")

	for _, row := range s.checkouts {
		if row.eventID == event.EventID {
			return nil
		}
	}

	s.checkouts = append(s.checkouts, &checkoutRow{
		eventID:  event.EventID,
		bookID:   event.BookID,
		patronID: event.PatronID,
		till:     event.Till,
		status:   "CHECKEDOUT",
	})

	return nil
}

// RegisterReturned marks the open checkout row as returned.
func (s *InMemoryDailySheet) RegisterReturned(_ context.Context, event core.BookReturned) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.checkouts {
		if row.bookID == event.BookID && row.patronID == event.PatronID && row.status == "CHECKEDOUT" {
			row.status = "RETURNED"
			break
		}
	}

	return nil
}

// RegisterOverdueRegistered flags the open checkout row as registered overdue.
func (s *InMemoryDailySheet) RegisterOverdueRegistered(_ context.Context, event core.OverdueCheckoutRegistered) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.checkouts {
		if row.bookID == event.BookID && row.patronID == event.PatronID && row.status == "CHECKEDOUT" {
			row.overdueRegistered = true
			break
		}
	}

	return nil
}

func (s *InMemoryDailySheet) markHold(bookID core.BookIDString, patronID core.PatronIDString, status string) {
	for _, row := range s.holds {
		if row.bookID == bookID && row.patronID == patronID && row.status == "ACTIVE" {
			row.status = status
			break
		}
	}
}
