package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/shell"
	"github.com/AntonStoeckl/library-lending-go/shell/postgresrepo/internal/adapters"
)

const (
	dialectPostgres = "postgres"

	logMsgDBQueryFailed   = "database query execution failed"
	logMsgDBExecFailed    = "database execution failed"
	logMsgCloseRowsFailed = "failed to close database rows"
	logMsgSQLExecuted     = "executed sql for: "
	logAttrQuery          = "query"
	logActionQuery        = "query"
	logActionExec         = "exec"
)

type sqlQueryString = string

// Repository wraps one database connection for all the PostgreSQL stores of
// the lending service. Build the typed stores from it with BookStore,
// PatronStore, DailySheetStore, JournalStore, and PatronProfileStore.
type Repository struct {
	db     adapters.DBAdapter
	logger shell.Logger
}

// Option defines a functional option for configuring a Repository.
type Option func(*Repository) error

// WithLogger sets the logger for the Repository.
//
// Debug level: SQL statements with execution timing (development use)
// Warn level: non-critical issues like cleanup failures
// Error level: failures that cause operation failures.
func WithLogger(logger shell.Logger) Option {
	return func(r *Repository) error {
		r.logger = logger
		return nil
	}
}

// NewRepositoryFromPGXPool creates a new Repository using a pgx Pool with optional configuration.
func NewRepositoryFromPGXPool(db *pgxpool.Pool, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, ErrNilDatabaseConnection
	}

	return newRepository(adapters.NewPGXAdapter(db), options...)
}

// NewRepositoryFromSQLDB creates a new Repository using a sql.DB with optional configuration.
func NewRepositoryFromSQLDB(db *sql.DB, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, ErrNilDatabaseConnection
	}

	return newRepository(adapters.NewSQLAdapter(db), options...)
}

// NewRepositoryFromSQLX creates a new Repository using a sqlx.DB with optional configuration.
func NewRepositoryFromSQLX(db *sqlx.DB, options ...Option) (Repository, error) {
	if db == nil {
		return Repository{}, ErrNilDatabaseConnection
	}

	return newRepository(adapters.NewSQLXAdapter(db), options...)
}

func newRepository(db adapters.DBAdapter, options ...Option) (Repository, error) {
	r := Repository{db: db}

	for _, option := range options {
		if err := option(&r); err != nil {
			return Repository{}, err
		}
	}

	return r, nil
}

// BookStore creates the book repository on this connection.
func (r Repository) BookStore() BookStore {
	return BookStore{repo: r}
}

// PatronStore creates the patron repository on this connection.
func (r Repository) PatronStore() PatronStore {
	return PatronStore{repo: r}
}

// DailySheetStore creates the reconciliation sheet store on this connection.
func (r Repository) DailySheetStore() DailySheetStore {
	return DailySheetStore{repo: r}
}

// JournalStore creates the event journal store on this connection.
func (r Repository) JournalStore() JournalStore {
	return JournalStore{repo: r}
}

// PatronProfileStore creates the patron profile read model store on this connection.
func (r Repository) PatronProfileStore() PatronProfileStore {
	return PatronProfileStore{repo: r}
}

func (r Repository) dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// query executes a select statement and returns the rows with logging and timing.
func (r Repository) query(ctx context.Context, sqlQuery sqlQueryString) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := r.db.Query(ctx, sqlQuery)
	r.logSQLWithDuration(sqlQuery, logActionQuery, time.Since(start))

	if queryErr != nil {
		if r.logger != nil {
			r.logger.Error(logMsgDBQueryFailed, shell.LogAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(ErrQueryingFailed, queryErr)
	}

	return rows, nil
}

// exec executes a modifying statement and returns the rows affected with logging and timing.
func (r Repository) exec(ctx context.Context, sqlQuery sqlQueryString) (int64, error) {
	start := time.Now()
	result, execErr := r.db.Exec(ctx, sqlQuery)
	r.logSQLWithDuration(sqlQuery, logActionExec, time.Since(start))

	if execErr != nil {
		if r.logger != nil {
			r.logger.Error(logMsgDBExecFailed, shell.LogAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return 0, errors.Join(ErrExecFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (r Repository) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if r.logger != nil {
			r.logger.Warn(logMsgCloseRowsFailed, shell.LogAttrError, closeErr.Error())
		}
	}
}

// wasApplied reports whether the event ID is already recorded in the given
// applied-events table.
func (r Repository) wasApplied(ctx context.Context, table string, eventID string) (bool, error) {
	selectStmt := r.dialect().
		From(table).
		Select(colEventID).
		Where(goqu.Ex{colEventID: eventID})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return false, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := r.query(ctx, sqlQuery)
	if queryErr != nil {
		return false, queryErr
	}
	defer r.closeRows(rows)

	return rows.Next(), nil
}

// recordApplied records the event ID in the given applied-events table.
// Recording happens after the state delta, so a crash in between leads to a
// redelivered event being applied again - the deltas tolerate that, a lost
// delta would not be recovered.
func (r Repository) recordApplied(ctx context.Context, table string, eventID string) error {
	insertStmt := r.dialect().
		Insert(table).
		Rows(goqu.Record{colEventID: eventID}).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := r.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}

func (r Repository) logSQLWithDuration(sqlQuery sqlQueryString, action string, duration time.Duration) {
	if r.logger != nil {
		r.logger.Debug(
			logMsgSQLExecuted+action,
			logAttrQuery, sqlQuery,
			shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
		)
	}
}
