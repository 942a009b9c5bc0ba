package postgresrepo

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const (
	tablePatrons             = "patrons"
	tablePatronHolds         = "patron_holds"
	tableOverdueCheckouts    = "overdue_checkouts"
	tablePatronAppliedEvents = "patron_applied_events"

	colPatronID   = "patron_id"
	colPatronType = "patron_type"
	colEventID    = "event_id"
)

// PatronStore is the PostgreSQL implementation of shell.StoresPatrons.
//
// Patron state is kept as membership tables for holds and overdue checkouts,
// matching the sets on the core.Patron aggregate. Apply mirrors
// core.TransformPatron: each patron event becomes one membership delta.
// Applied event IDs are recorded so redelivered events are skipped.
type PatronStore struct {
	repo Repository
}

// Load retrieves the patron with the given ID, assembled with the default
// placing-on-hold policy chain, or shell.ErrPatronNotFound.
func (s PatronStore) Load(ctx context.Context, patronID core.PatronIDString) (core.Patron, error) {
	patronType, loadErr := s.loadPatronType(ctx, patronID)
	if loadErr != nil {
		return core.Patron{}, loadErr
	}

	holds, holdsErr := s.loadMembership(ctx, tablePatronHolds, patronID)
	if holdsErr != nil {
		return core.Patron{}, holdsErr
	}

	overdue, overdueErr := s.loadMembership(ctx, tableOverdueCheckouts, patronID)
	if overdueErr != nil {
		return core.Patron{}, overdueErr
	}

	patron := core.BuildPatron(
		patronID,
		patronType,
		core.PatronHoldsOf(holds...),
		core.OverdueCheckoutsOf(overdue...),
		core.DefaultPlacingOnHoldPolicies(),
	)

	return patron, nil
}

// Create stores a new patron. Redelivered PatronCreated events are no-ops.
func (s PatronStore) Create(ctx context.Context, event core.PatronCreated) error {
	insertStmt := s.repo.dialect().
		Insert(tablePatrons).
		Rows(goqu.Record{
			colPatronID:   event.PatronID,
			colPatronType: string(event.PatronType),
		}).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.repo.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}

// Apply applies one patron event as a membership delta, idempotent per event ID.
func (s PatronStore) Apply(ctx context.Context, event core.PatronEvent) error {
	alreadyApplied, checkErr := s.repo.wasApplied(ctx, tablePatronAppliedEvents, event.HasEventID())
	if checkErr != nil {
		return checkErr
	}

	if alreadyApplied {
		return nil
	}

	if deltaErr := s.applyDelta(ctx, event); deltaErr != nil {
		return deltaErr
	}

	return s.repo.recordApplied(ctx, tablePatronAppliedEvents, event.HasEventID())
}

func (s PatronStore) applyDelta(ctx context.Context, event core.PatronEvent) error {
	switch e := event.(type) {
	case core.BookPlacedOnHold:
		return s.addMembership(ctx, tablePatronHolds, e.PatronID, e.BookID)

	case core.BookCheckedOut:
		return s.removeMembership(ctx, tablePatronHolds, e.PatronID, e.BookID)

	case core.BookHoldCancelled:
		return s.removeMembership(ctx, tablePatronHolds, e.PatronID, e.BookID)

	case core.BookHoldExpired:
		return s.removeMembership(ctx, tablePatronHolds, e.PatronID, e.BookID)

	case core.OverdueCheckoutRegistered:
		return s.addMembership(ctx, tableOverdueCheckouts, e.PatronID, e.BookID)

	case core.BookReturned:
		return s.removeMembership(ctx, tableOverdueCheckouts, e.PatronID, e.BookID)

	default:
		// events without a patron state delta still get their ID recorded
		return nil
	}
}

func (s PatronStore) loadPatronType(ctx context.Context, patronID core.PatronIDString) (core.PatronType, error) {
	selectStmt := s.repo.dialect().
		From(tablePatrons).
		Select(colPatronType).
		Where(goqu.Ex{colPatronID: patronID})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return "", queryErr
	}
	defer s.repo.closeRows(rows)

	if !rows.Next() {
		return "", shell.ErrPatronNotFound
	}

	var patronType string
	if scanErr := rows.Scan(&patronType); scanErr != nil {
		return "", errors.Join(ErrScanningRowFailed, scanErr)
	}

	return core.PatronType(patronType), nil
}

func (s PatronStore) loadMembership(
	ctx context.Context,
	table string,
	patronID core.PatronIDString,
) ([]core.BookIDString, error) {

	selectStmt := s.repo.dialect().
		From(table).
		Select(colBookID).
		Where(goqu.Ex{colPatronID: patronID})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.repo.closeRows(rows)

	bookIDs := make([]core.BookIDString, 0)

	for rows.Next() {
		var bookID string
		if scanErr := rows.Scan(&bookID); scanErr != nil {
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		bookIDs = append(bookIDs, bookID)
	}

	return bookIDs, nil
}

func (s PatronStore) addMembership(
	ctx context.Context,
	table string,
	patronID core.PatronIDString,
	bookID core.BookIDString,
) error {

	insertStmt := s.repo.dialect().
		Insert(table).
		Rows(goqu.Record{colPatronID: patronID, colBookID: bookID}).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.repo.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}

func (s PatronStore) removeMembership(
	ctx context.Context,
	table string,
	patronID core.PatronIDString,
	bookID core.BookIDString,
) error {

	deleteStmt := s.repo.dialect().
		Delete(table).
		Where(goqu.Ex{colPatronID: patronID, colBookID: bookID})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.repo.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}

