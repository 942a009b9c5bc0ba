// Package postgresrepo implements the PostgreSQL storage behind the lending
// service: the book and patron repositories, the daily reconciliation sheets,
// the event journal, and the patron profile read model.
//
// All repositories share one Repository handle, which wraps a database
// connection behind a common adapter interface. Supported connection types
// are pgxpool.Pool, sql.DB, and sqlx.DB; SQL is built with goqu.
//
// The schema the repositories expect is in schema.sql.
package postgresrepo
