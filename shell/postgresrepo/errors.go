package postgresrepo

import "errors"

var (
	// ErrNilDatabaseConnection occurs when nil is supplied instead of a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed occurs when building an SQL statement fails.
	ErrBuildingQueryFailed = errors.New("building the sql statement failed")

	// ErrQueryingFailed occurs when executing an SQL query fails.
	ErrQueryingFailed = errors.New("executing the sql query failed")

	// ErrExecFailed occurs when executing an SQL statement fails.
	ErrExecFailed = errors.New("executing the sql statement failed")

	// ErrScanningRowFailed occurs when scanning a database row fails.
	ErrScanningRowFailed = errors.New("scanning the database row failed")

	// ErrUnknownBookStatus occurs when a book row carries a status outside the lifecycle.
	ErrUnknownBookStatus = errors.New("unknown book status in database row")
)
