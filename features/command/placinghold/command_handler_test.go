package placinghold_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/command/placinghold"
	"github.com/AntonStoeckl/library-lending-go/shell"
	"github.com/AntonStoeckl/library-lending-go/testutil"
)

type fixture struct {
	books    *testutil.InMemoryBooks
	patrons  *testutil.InMemoryPatrons
	recorder *testutil.EventRecorder
	handler  placinghold.CommandHandler
}

func newFixture() fixture {
	books := testutil.NewInMemoryBooks()
	patrons := testutil.NewInMemoryPatrons()
	recorder := testutil.NewEventRecorder()

	return fixture{
		books:    books,
		patrons:  patrons,
		recorder: recorder,
		handler:  placinghold.NewCommandHandler(books, patrons, recorder),
	}
}

func (f fixture) givenRegularPatron(t *testing.T, patronID uuid.UUID) {
	t.Helper()

	f.patrons.GivenPatron(core.BuildPatron(
		patronID.String(),
		core.PatronTypeRegular,
		core.EmptyPatronHolds(),
		core.EmptyOverdueCheckouts(),
		core.DefaultPlacingOnHoldPolicies(),
	))
}

func (f fixture) givenAvailableBook(t *testing.T, bookID uuid.UUID, bookType core.BookType) {
	t.Helper()

	err := f.books.Save(context.Background(), core.AvailableBook{BookID: bookID.String(), BookType: bookType})
	require.NoError(t, err)
}

func Test_PlaceHold_Success(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenRegularPatron(t, patronID)
	f.givenAvailableBook(t, bookID, core.BookTypeCirculating)

	command, err := placinghold.BuildCommand(patronID, bookID, 5, time.Now())
	require.NoError(t, err)

	// act
	err = f.handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	events := f.recorder.RecordedEvents()
	require.Len(t, events, 1)
	placed, ok := events[0].(core.BookPlacedOnHold)
	require.True(t, ok)
	assert.Equal(t, patronID.String(), placed.PatronID)
	assert.Equal(t, bookID.String(), placed.BookID)
	assert.False(t, placed.IsOpenEnded())
}

func Test_PlaceHold_PolicyRejection_PublishesBookHoldFailed(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenRegularPatron(t, patronID)
	f.givenAvailableBook(t, bookID, core.BookTypeRestricted)

	command, err := placinghold.BuildCommand(patronID, bookID, 5, time.Now())
	require.NoError(t, err)

	// act
	err = f.handler.Handle(context.Background(), command)

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrHoldRejected)
	events := f.recorder.RecordedEvents()
	require.Len(t, events, 1)
	failed, ok := events[0].(core.BookHoldFailed)
	require.True(t, ok)
	assert.True(t, failed.IsErrorEvent())
}

func Test_PlaceHold_BookHeldBySamePatron_IsIdempotent(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenRegularPatron(t, patronID)

	err := f.books.Save(context.Background(), core.BookOnHold{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: patronID.String(),
	})
	require.NoError(t, err)

	command, err := placinghold.BuildCommand(patronID, bookID, 5, time.Now())
	require.NoError(t, err)

	// act
	err = f.handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.Empty(t, f.recorder.RecordedEvents())
}

func Test_PlaceHold_BookHeldByAnotherPatron_PublishesBookHoldFailed(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenRegularPatron(t, patronID)

	err := f.books.Save(context.Background(), core.BookOnHold{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: uuid.New().String(),
	})
	require.NoError(t, err)

	command, err := placinghold.BuildCommand(patronID, bookID, 5, time.Now())
	require.NoError(t, err)

	// act
	err = f.handler.Handle(context.Background(), command)

	// assert
	require.Error(t, err)
	events := f.recorder.RecordedEvents()
	require.Len(t, events, 1)
	assert.IsType(t, core.BookHoldFailed{}, events[0])
}

func Test_PlaceHold_BookNotFound_PublishesBookHoldFailed(t *testing.T) {
	// arrange
	f := newFixture()
	patronID := uuid.New()
	f.givenRegularPatron(t, patronID)

	command, err := placinghold.BuildCommand(patronID, uuid.New(), 5, time.Now())
	require.NoError(t, err)

	// act
	err = f.handler.Handle(context.Background(), command)

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, shell.ErrBookNotFound)
	events := f.recorder.RecordedEvents()
	require.Len(t, events, 1)
	assert.IsType(t, core.BookHoldFailed{}, events[0])
}

func Test_PlaceHold_PatronNotFound_FailsWithoutEvents(t *testing.T) {
	// arrange
	f := newFixture()
	bookID := uuid.New()
	f.givenAvailableBook(t, bookID, core.BookTypeCirculating)

	command, err := placinghold.BuildCommand(uuid.New(), bookID, 5, time.Now())
	require.NoError(t, err)

	// act
	err = f.handler.Handle(context.Background(), command)

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, shell.ErrPatronNotFound)
	assert.Empty(t, f.recorder.RecordedEvents())
}

func Test_PlaceHold_FourthHold_AlsoPublishesMaximumNumberOfHoldsReached(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()

	f.patrons.GivenPatron(core.BuildPatron(
		patronID.String(),
		core.PatronTypeRegular,
		core.PatronHoldsOf(uuid.New().String(), uuid.New().String(), uuid.New().String()),
		core.EmptyOverdueCheckouts(),
		core.DefaultPlacingOnHoldPolicies(),
	))
	f.givenAvailableBook(t, bookID, core.BookTypeCirculating)

	command, err := placinghold.BuildCommand(patronID, bookID, 5, time.Now())
	require.NoError(t, err)

	// act
	err = f.handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	events := f.recorder.RecordedEvents()
	require.Len(t, events, 2)
	assert.IsType(t, core.BookPlacedOnHold{}, events[0])
	assert.IsType(t, core.MaximumNumberOfHoldsReached{}, events[1])
}

func Test_BuildCommand_RejectsNonPositiveNumberOfDays(t *testing.T) {
	// act
	_, err := placinghold.BuildCommand(uuid.New(), uuid.New(), 0, time.Now())

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidDuration)
}

func Test_BuildCommandWithOpenEndedHold_HasNoExpiry(t *testing.T) {
	// act
	command := placinghold.BuildCommandWithOpenEndedHold(uuid.New(), uuid.New(), time.Now())

	// assert
	assert.True(t, command.HoldDuration().IsOpenEnded())
}
