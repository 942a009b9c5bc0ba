// Package config provides configuration helpers for the lending service:
// PostgreSQL connections (pgxpool, sql.DB, sqlx) and the HTTP listen address.
//
// Values come from environment variables with local development defaults, so
// the service runs against a local database without any setup.
package config
