package postgresrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const (
	tableBooks    = "books"
	colBookID     = "book_id"
	colBookType   = "book_type"
	colBookStatus = "status"
	colByPatron   = "by_patron"
	colHoldTill   = "hold_till"

	bookStatusAvailable  = "Available"
	bookStatusOnHold     = "OnHold"
	bookStatusCheckedOut = "CheckedOut"
)

// BookStore is the PostgreSQL implementation of shell.StoresBooks.
// It keeps one row per book copy with its current lifecycle state.
type BookStore struct {
	repo Repository
}

// Load retrieves the book copy with the given ID, or shell.ErrBookNotFound.
func (s BookStore) Load(ctx context.Context, bookID core.BookIDString) (core.Book, error) {
	selectStmt := s.repo.dialect().
		From(tableBooks).
		Select(colBookType, colBookStatus, colByPatron, colHoldTill).
		Where(goqu.Ex{colBookID: bookID})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.repo.closeRows(rows)

	if !rows.Next() {
		return nil, shell.ErrBookNotFound
	}

	var bookType, status string
	var byPatron sql.NullString
	var holdTill sql.NullTime

	if scanErr := rows.Scan(&bookType, &status, &byPatron, &holdTill); scanErr != nil {
		return nil, errors.Join(ErrScanningRowFailed, scanErr)
	}

	return buildBookFromRow(bookID, core.BookType(bookType), status, byPatron, holdTill)
}

// Save upserts the book copy's current lifecycle state.
func (s BookStore) Save(ctx context.Context, book core.Book) error {
	record := goqu.Record{
		colBookID:     book.ID(),
		colBookType:   string(book.Type()),
		colBookStatus: bookStatusAvailable,
		colByPatron:   nil,
		colHoldTill:   nil,
	}

	switch b := book.(type) {
	case core.AvailableBook:
		// the zero record already describes an available copy

	case core.BookOnHold:
		record[colBookStatus] = bookStatusOnHold
		record[colByPatron] = b.ByPatron
		if b.HoldTill != nil {
			record[colHoldTill] = *b.HoldTill
		}

	case core.CheckedOutBook:
		record[colBookStatus] = bookStatusCheckedOut
		record[colByPatron] = b.ByPatron

	default:
		return ErrUnknownBookStatus
	}

	insertStmt := s.repo.dialect().
		Insert(tableBooks).
		Rows(record).
		OnConflict(goqu.DoUpdate(colBookID, goqu.Record{
			colBookStatus: record[colBookStatus],
			colByPatron:   record[colByPatron],
			colHoldTill:   record[colHoldTill],
		}))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.repo.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}

func buildBookFromRow(
	bookID core.BookIDString,
	bookType core.BookType,
	status string,
	byPatron sql.NullString,
	holdTill sql.NullTime,
) (core.Book, error) {

	switch status {
	case bookStatusAvailable:
		return core.AvailableBook{BookID: bookID, BookType: bookType}, nil

	case bookStatusOnHold:
		book := core.BookOnHold{BookID: bookID, BookType: bookType, ByPatron: byPatron.String}
		if holdTill.Valid {
			till := core.ToOccurredAt(holdTill.Time)
			book.HoldTill = &till
		}

		return book, nil

	case bookStatusCheckedOut:
		return core.CheckedOutBook{BookID: bookID, BookType: bookType, ByPatron: byPatron.String}, nil

	default:
		return nil, ErrUnknownBookStatus
	}
}
