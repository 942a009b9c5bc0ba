// Package adapters provides database adapter implementations for the PostgreSQL repositories.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the repositories to work seamlessly with any
// supported database connection type.
package adapters
