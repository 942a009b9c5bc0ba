// Package registeringoverduecheckout contains the daily job that registers
// overdue checkouts on the patrons who caused them.
package registeringoverduecheckout

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/dailysheet"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

// SheetQuery defines the interface needed by the Job to read the checkouts-to-overdue sheet.
type SheetQuery interface {
	QueryCheckoutsToOverdueSheet(ctx context.Context, now time.Time) (dailysheet.CheckoutsToOverdueSheet, error)
}

// EventPublisher defines the interface needed by the Job to publish OverdueCheckoutRegistered events.
type EventPublisher interface {
	Publish(ctx context.Context, envelope shell.EventEnvelope) error
}

// Job registers every checkout on the checkouts-to-overdue sheet by publishing
// an OverdueCheckoutRegistered event per row. Rows are independent: one
// failing row is reported in the result and does not stop the rest of the sheet.
type Job struct {
	sheet SheetQuery
	bus   EventPublisher
	clock shell.Clock
}

// NewJob creates a new Job.
func NewJob(sheet SheetQuery, bus EventPublisher, clock shell.Clock) Job {
	return Job{
		sheet: sheet,
		bus:   bus,
		clock: clock,
	}
}

// Run executes one reconciliation pass.
func (j Job) Run(ctx context.Context) (dailysheet.Result, error) {
	now := j.clock.Now()

	sheet, err := j.sheet.QueryCheckoutsToOverdueSheet(ctx, now)
	if err != nil {
		return dailysheet.Result{}, err
	}

	result := dailysheet.Result{}

	for _, row := range sheet.Rows {
		event := core.BuildOverdueCheckoutRegistered(row.PatronID, row.BookID, now)

		if publishErr := j.bus.Publish(ctx, shell.BuildEventEnvelope(event, shell.NewCommandMetadata())); publishErr != nil {
			result.Failures = append(result.Failures, dailysheet.RowFailure{
				BookID:   row.BookID,
				PatronID: row.PatronID,
				Err:      publishErr,
			})

			continue
		}

		result.Succeeded++
	}

	return result, nil
}
