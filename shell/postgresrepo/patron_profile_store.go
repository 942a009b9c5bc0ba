package postgresrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/query/patronprofile"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// PatronProfileStore is the PostgreSQL implementation of
// patronprofile.ProfileStorage. The profile is assembled from the book,
// checkout sheet, and overdue membership tables, so it reflects exactly the
// state the write side keeps.
type PatronProfileStore struct {
	repo Repository
}

// LoadProfile retrieves the profile of the patron with the given ID,
// or shell.ErrPatronNotFound.
func (s PatronProfileStore) LoadProfile(
	ctx context.Context,
	patronID core.PatronIDString,
) (patronprofile.PatronProfile, error) {

	var empty patronprofile.PatronProfile

	patronType, typeErr := s.loadPatronType(ctx, patronID)
	if typeErr != nil {
		return empty, typeErr
	}

	holds, holdsErr := s.loadHolds(ctx, patronID)
	if holdsErr != nil {
		return empty, holdsErr
	}

	checkouts, checkoutsErr := s.loadCheckouts(ctx, patronID)
	if checkoutsErr != nil {
		return empty, checkoutsErr
	}

	overdue, overdueErr := s.loadOverdue(ctx, patronID)
	if overdueErr != nil {
		return empty, overdueErr
	}

	profile := patronprofile.PatronProfile{
		PatronID:         patronID,
		PatronType:       patronType,
		Holds:            holds,
		Checkouts:        checkouts,
		OverdueCheckouts: overdue,
	}

	return profile, nil
}

func (s PatronProfileStore) loadPatronType(
	ctx context.Context,
	patronID core.PatronIDString,
) (core.PatronType, error) {

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

func (s PatronProfileStore) loadHolds(
	ctx context.Context,
	patronID core.PatronIDString,
) ([]patronprofile.Hold, error) {

	selectStmt := s.repo.dialect().
		From(tableBooks).
		Select(colBookID, colHoldTill).
		Where(goqu.Ex{colByPatron: patronID, colBookStatus: bookStatusOnHold}).
		Order(goqu.I(colBookID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.repo.closeRows(rows)

	holds := make([]patronprofile.Hold, 0)

	for rows.Next() {
		var bookID string
		var holdTill sql.NullTime

		if scanErr := rows.Scan(&bookID, &holdTill); scanErr != nil {
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		hold := patronprofile.Hold{BookID: bookID}
		if holdTill.Valid {
			till := core.ToOccurredAt(holdTill.Time)
			hold.Till = &till
		}

		holds = append(holds, hold)
	}

	return holds, nil
}

func (s PatronProfileStore) loadCheckouts(
	ctx context.Context,
	patronID core.PatronIDString,
) ([]patronprofile.Checkout, error) {

	selectStmt := s.repo.dialect().
		From(tableCheckoutsSheet).
		Select(colBookID, colCheckoutTill).
		Where(goqu.Ex{colPatronID: patronID, colSheetStatus: checkoutStatusCheckedOut}).
		Order(goqu.I(colBookID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.repo.closeRows(rows)

	checkouts := make([]patronprofile.Checkout, 0)

	for rows.Next() {
		var checkout patronprofile.Checkout
		if scanErr := rows.Scan(&checkout.BookID, &checkout.Till); scanErr != nil {
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		checkouts = append(checkouts, checkout)
	}

	return checkouts, nil
}

func (s PatronProfileStore) loadOverdue(
	ctx context.Context,
	patronID core.PatronIDString,
) ([]core.BookIDString, error) {

	selectStmt := s.repo.dialect().
		From(tableOverdueCheckouts).
		Select(colBookID).
		Where(goqu.Ex{colPatronID: patronID}).
		Order(goqu.I(colBookID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.repo.closeRows(rows)

	overdue := make([]core.BookIDString, 0)

	for rows.Next() {
		var bookID string
		if scanErr := rows.Scan(&bookID); scanErr != nil {
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		overdue = append(overdue, bookID)
	}

	return overdue, nil
}
