// Package dailysheet contains the daily reconciliation of holds and checkouts:
// the sheets listing which holds have expired and which checkouts have become
// overdue, the storage contract behind them, and the projector that keeps the
// sheets current from the event stream.
//
// The sheets are the bookkeeping source for the jobs in the expiringholds and
// registeringoverduecheckout sub-packages, which run at midnight UTC.
package dailysheet

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/core"
)

// ExpiredHoldRow is one hold whose expiry has passed.
type ExpiredHoldRow struct {
	BookID   core.BookIDString
	PatronID core.PatronIDString
	HoldTill time.Time
}

// HoldsToExpireSheet lists all active close-ended holds that have expired.
// Open-ended holds never show up here.
type HoldsToExpireSheet struct {
	Rows []ExpiredHoldRow
}

// Count returns the number of rows on the sheet.
func (s HoldsToExpireSheet) Count() int {
	return len(s.Rows)
}

// OverdueCheckoutRow is one checkout whose due date has passed.
type OverdueCheckoutRow struct {
	BookID   core.BookIDString
	PatronID core.PatronIDString
	Till     time.Time
}

// CheckoutsToOverdueSheet lists all checkouts that have become overdue and
// have not been registered as overdue yet.
type CheckoutsToOverdueSheet struct {
	Rows []OverdueCheckoutRow
}

// Count returns the number of rows on the sheet.
func (s CheckoutsToOverdueSheet) Count() int {
	return len(s.Rows)
}

// DailySheet is the storage contract for the reconciliation sheets.
//
// All Register methods must be idempotent per event ID, since the projector
// may see the same event more than once.
type DailySheet interface {
	QueryHoldsToExpireSheet(ctx context.Context, now time.Time) (HoldsToExpireSheet, error)
	QueryCheckoutsToOverdueSheet(ctx context.Context, now time.Time) (CheckoutsToOverdueSheet, error)

	RegisterPlacedOnHold(ctx context.Context, event core.BookPlacedOnHold) error
	RegisterHoldCancelled(ctx context.Context, event core.BookHoldCancelled) error
	RegisterHoldExpired(ctx context.Context, event core.BookHoldExpired) error
	RegisterCheckedOut(ctx context.Context, event core.BookCheckedOut) error
	RegisterReturned(ctx context.Context, event core.BookReturned) error
	RegisterOverdueRegistered(ctx context.Context, event core.OverdueCheckoutRegistered) error
}
