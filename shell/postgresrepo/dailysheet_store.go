package postgresrepo

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/dailysheet"
)

const (
	tableHoldsSheet     = "holds_sheet"
	tableCheckoutsSheet = "checkouts_sheet"

	colSheetStatus       = "status"
	colCheckoutTill      = "till"
	colHoldEventID       = "hold_event_id"
	colCheckoutEventID   = "checkout_event_id"
	colOverdueRegistered = "overdue_registered"

	holdStatusActive     = "ACTIVE"
	holdStatusCancelled  = "CANCELLED"
	holdStatusExpired    = "EXPIRED"
	holdStatusCheckedOut = "CHECKEDOUT"

	checkoutStatusCheckedOut = "CHECKEDOUT"
	checkoutStatusReturned   = "RETURNED"
)

// DailySheetStore is the PostgreSQL implementation of dailysheet.DailySheet.
//
// Sheet rows are append-only; lifecycle events move the status of the open
// row for a book and patron. Each row carries the ID of the event that
// created it under a unique key, so a redelivered event conflicts instead of
// inserting a second row. The status moves are guarded by the current status
// and degrade to no-ops on redelivery.
type DailySheetStore struct {
	repo Repository
}

// QueryHoldsToExpireSheet returns all active close-ended holds expired before now.
func (s DailySheetStore) QueryHoldsToExpireSheet(
	ctx context.Context,
	now time.Time,
) (dailysheet.HoldsToExpireSheet, error) {

	var empty dailysheet.HoldsToExpireSheet

	selectStmt := s.repo.dialect().
		From(tableHoldsSheet).
		Select(colBookID, colPatronID, colHoldTill).
		Where(
			goqu.Ex{colSheetStatus: holdStatusActive},
			goqu.C(colHoldTill).IsNotNull(),
			goqu.C(colHoldTill).Lt(now),
		)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.repo.closeRows(rows)

	sheet := dailysheet.HoldsToExpireSheet{}

	for rows.Next() {
		var row dailysheet.ExpiredHoldRow
		if scanErr := rows.Scan(&row.BookID, &row.PatronID, &row.HoldTill); scanErr != nil {
			return empty, errors.Join(ErrScanningRowFailed, scanErr)
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// QueryCheckoutsToOverdueSheet returns all checkouts due before now that have
// not been registered as overdue yet.
func (s DailySheetStore) QueryCheckoutsToOverdueSheet(
	ctx context.Context,
	now time.Time,
) (dailysheet.CheckoutsToOverdueSheet, error) {

	var empty dailysheet.CheckoutsToOverdueSheet

	selectStmt := s.repo.dialect().
		From(tableCheckoutsSheet).
		Select(colBookID, colPatronID, colCheckoutTill).
		Where(
			goqu.Ex{colSheetStatus: checkoutStatusCheckedOut},
			goqu.Ex{colOverdueRegistered: false},
			goqu.C(colCheckoutTill).Lt(now),
		)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.repo.closeRows(rows)

	sheet := dailysheet.CheckoutsToOverdueSheet{}

	for rows.Next() {
		var row dailysheet.OverdueCheckoutRow
		if scanErr := rows.Scan(&row.BookID, &row.PatronID, &row.Till); scanErr != nil {
			return empty, errors.Join(ErrScanningRowFailed, scanErr)
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

// RegisterPlacedOnHold inserts an active hold row keyed by the event ID, so a
// redelivery conflicts on the unique key instead of inserting a second row.
func (s DailySheetStore) RegisterPlacedOnHold(ctx context.Context, event core.BookPlacedOnHold) error {
	record := goqu.Record{
		colHoldEventID: event.EventID,
		colBookID:      event.BookID,
		colPatronID:    event.PatronID,
		colHoldTill:    nil,
		colSheetStatus: holdStatusActive,
	}
	if event.HoldTill != nil {
		record[colHoldTill] = *event.HoldTill
	}

	insertStmt := s.repo.dialect().
		Insert(tableHoldsSheet).
		Rows(record).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	_, execErr := s.repo.exec(ctx, sqlQuery)

	return execErr
}

// RegisterHoldCancelled marks the active hold row as cancelled.
func (s DailySheetStore) RegisterHoldCancelled(ctx context.Context, event core.BookHoldCancelled) error {
	return s.moveHoldStatus(ctx, event.BookID, event.PatronID, holdStatusCancelled)
}

// RegisterHoldExpired marks the active hold row as expired.
func (s DailySheetStore) RegisterHoldExpired(ctx context.Context, event core.BookHoldExpired) error {
	return s.moveHoldStatus(ctx, event.BookID, event.PatronID, holdStatusExpired)
}

// RegisterCheckedOut marks the active hold row as checked out and inserts a
// checkout row keyed by the event ID.
func (s DailySheetStore) RegisterCheckedOut(ctx context.Context, event core.BookCheckedOut) error {
	if moveErr := s.moveHoldStatus(ctx, event.BookID, event.PatronID, holdStatusCheckedOut); moveErr != nil {
		return moveErr
	}

	insertStmt := s.repo.dialect().
		Insert(tableCheckoutsSheet).
		Rows(goqu.Record{
			colCheckoutEventID:   event.EventID,
			colBookID:            event.BookID,
			colPatronID:          event.PatronID,
			colCheckoutTill:      event.Till,
			colSheetStatus:       checkoutStatusCheckedOut,
			colOverdueRegistered: false,
		}).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	_, execErr := s.repo.exec(ctx, sqlQuery)

	return execErr
}

// RegisterReturned marks the open checkout row as returned.
func (s DailySheetStore) RegisterReturned(ctx context.Context, event core.BookReturned) error {
	return s.moveCheckoutRow(ctx, event.BookID, event.PatronID, goqu.Record{
		colSheetStatus: checkoutStatusReturned,
	})
}

// RegisterOverdueRegistered flags the open checkout row as registered overdue.
func (s DailySheetStore) RegisterOverdueRegistered(ctx context.Context, event core.OverdueCheckoutRegistered) error {
	return s.moveCheckoutRow(ctx, event.BookID, event.PatronID, goqu.Record{
		colOverdueRegistered: true,
	})
}

func (s DailySheetStore) moveHoldStatus(
	ctx context.Context,
	bookID core.BookIDString,
	patronID core.PatronIDString,
	status string,
) error {

	updateStmt := s.repo.dialect().
		Update(tableHoldsSheet).
		Set(goqu.Record{colSheetStatus: status}).
		Where(goqu.Ex{
			colBookID:      bookID,
			colPatronID:    patronID,
			colSheetStatus: holdStatusActive,
		})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.repo.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}

func (s DailySheetStore) moveCheckoutRow(
	ctx context.Context,
	bookID core.BookIDString,
	patronID core.PatronIDString,
	change goqu.Record,
) error {

	updateStmt := s.repo.dialect().
		Update(tableCheckoutsSheet).
		Set(change).
		Where(goqu.Ex{
			colBookID:      bookID,
			colPatronID:    patronID,
			colSheetStatus: checkoutStatusCheckedOut,
		})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.repo.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}
