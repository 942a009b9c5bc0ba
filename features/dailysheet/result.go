package dailysheet

import "github.com/AntonStoeckl/library-lending-go/core"

// RowFailure is one sheet row that could not be reconciled.
type RowFailure struct {
	BookID   core.BookIDString
	PatronID core.PatronIDString
	Err      error
}

// Result summarizes one reconciliation run. Rows are processed independently:
// a failing row ends up in Failures and never stops the remaining rows.
type Result struct {
	Succeeded int
	Failures  []RowFailure
}

// FailedCount returns the number of rows that failed.
func (r Result) FailedCount() int {
	return len(r.Failures)
}

// HasFailures reports whether any row failed.
func (r Result) HasFailures() bool {
	return len(r.Failures) > 0
}
