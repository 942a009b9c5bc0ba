package postgresrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell/postgresrepo/internal/adapters"
)

type recordingAdapter struct {
	executed []string
}

func (a *recordingAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	a.executed = append(a.executed, query)
	return emptyRows{}, nil
}

func (a *recordingAdapter) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	a.executed = append(a.executed, query)
	return oneRowAffected{}, nil
}

type emptyRows struct{}

func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return nil }
func (emptyRows) Close() error      { return nil }

type oneRowAffected struct{}

func (oneRowAffected) RowsAffected() (int64, error) { return 1, nil }

func Test_DailySheetStore_RegisterPlacedOnHold_InsertIsKeyedByTheEventID(t *testing.T) {
	// arrange
	db := &recordingAdapter{}
	store := DailySheetStore{repo: Repository{db: db}}

	now := time.Now()
	event := core.BuildBookPlacedOnHold(
		uuid.New().String(), uuid.New().String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)

	// act
	err := store.RegisterPlacedOnHold(context.Background(), event)

	// assert: a redelivery conflicts on the unique event ID instead of
	// inserting a second active row
	require.NoError(t, err)
	require.Len(t, db.executed, 1)
	assert.Contains(t, db.executed[0], `"hold_event_id"`)
	assert.Contains(t, db.executed[0], event.EventID)
	assert.Contains(t, db.executed[0], "ON CONFLICT DO NOTHING")
}

func Test_DailySheetStore_RegisterCheckedOut_InsertIsKeyedByTheEventID(t *testing.T) {
	// arrange
	db := &recordingAdapter{}
	store := DailySheetStore{repo: Repository{db: db}}

	now := time.Now()
	event := core.BuildBookCheckedOut(
		uuid.New().String(), uuid.New().String(), core.BookTypeCirculating, now.Add(14*24*time.Hour), now)

	// act
	err := store.RegisterCheckedOut(context.Background(), event)

	// assert: the hold status move comes first, then the guarded insert
	require.NoError(t, err)
	require.Len(t, db.executed, 2)
	assert.Contains(t, db.executed[0], `UPDATE "holds_sheet"`)
	assert.Contains(t, db.executed[1], `"checkout_event_id"`)
	assert.Contains(t, db.executed[1], event.EventID)
	assert.Contains(t, db.executed[1], "ON CONFLICT DO NOTHING")
}
