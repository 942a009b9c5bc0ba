// Package testutil provides test doubles for the storage, publishing and
// clock dependencies of the command and event handlers: in-memory stores with
// the same idempotency semantics as the Postgres implementations, an event
// recorder, a pinned clock and a log spy.
package testutil
