package patronevents_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/eventhandler/patronevents"
	"github.com/AntonStoeckl/library-lending-go/shell"
	"github.com/AntonStoeckl/library-lending-go/testutil"
)

type fixture struct {
	books       *testutil.InMemoryBooks
	patrons     *testutil.InMemoryPatrons
	recorder    *testutil.EventRecorder
	coordinator patronevents.Coordinator
}

func newFixture() fixture {
	books := testutil.NewInMemoryBooks()
	patrons := testutil.NewInMemoryPatrons()
	recorder := testutil.NewEventRecorder()

	return fixture{
		books:       books,
		patrons:     patrons,
		recorder:    recorder,
		coordinator: patronevents.NewCoordinator(books, patrons, recorder),
	}
}

func (f fixture) givenPatron(t *testing.T, patronID uuid.UUID) {
	t.Helper()

	f.patrons.GivenPatron(core.BuildPatron(
		patronID.String(),
		core.PatronTypeRegular,
		core.EmptyPatronHolds(),
		core.EmptyOverdueCheckouts(),
		core.DefaultPlacingOnHoldPolicies(),
	))
}

func (f fixture) givenAvailableBook(t *testing.T, bookID uuid.UUID) {
	t.Helper()

	err := f.books.Save(context.Background(), core.AvailableBook{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
	})
	require.NoError(t, err)
}

func envelopeOf(event core.DomainEvent) shell.EventEnvelope {
	return shell.BuildEventEnvelope(event, shell.NewCommandMetadata())
}

func Test_Coordinator_PatronCreated_StoresThePatron(t *testing.T) {
	// arrange
	f := newFixture()
	patronID := uuid.New()
	event := core.BuildPatronCreated(patronID, core.PatronTypeResearcher, time.Now())

	// act
	err := f.coordinator.HandlePatronCreated(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)
	patron, err := f.patrons.Load(context.Background(), patronID.String())
	require.NoError(t, err)
	assert.Equal(t, core.PatronTypeResearcher, patron.PatronType)
}

func Test_Coordinator_BookPlacedOnHold_TransitionsBookAndAppliesHold(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenPatron(t, patronID)
	f.givenAvailableBook(t, bookID)

	now := time.Now()
	event := core.BuildBookPlacedOnHold(
		patronID.String(), bookID.String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)

	// act
	err := f.coordinator.HandleBookPlacedOnHold(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	onHold, ok := book.(core.BookOnHold)
	require.True(t, ok)
	assert.Equal(t, patronID.String(), onHold.ByPatron)

	patron, err := f.patrons.Load(context.Background(), patronID.String())
	require.NoError(t, err)
	assert.True(t, patron.Holds.Has(bookID.String()))
}

func Test_Coordinator_BookPlacedOnHold_Redelivery_IsIdempotent(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenPatron(t, patronID)
	f.givenAvailableBook(t, bookID)

	now := time.Now()
	event := core.BuildBookPlacedOnHold(
		patronID.String(), bookID.String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)
	envelope := envelopeOf(event)

	require.NoError(t, f.coordinator.HandleBookPlacedOnHold(context.Background(), envelope))

	// act
	err := f.coordinator.HandleBookPlacedOnHold(context.Background(), envelope)

	// assert
	require.NoError(t, err)
	assert.Empty(t, f.recorder.RecordedEvents())

	patron, err := f.patrons.Load(context.Background(), patronID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, patron.NumberOfHolds())
}

func Test_Coordinator_BookPlacedOnHold_RaceBetweenTwoPatrons_PublishesDuplicateHoldFound(t *testing.T) {
	// arrange: both patrons saw the copy as available, both events got published
	f := newFixture()
	firstPatronID, secondPatronID, bookID := uuid.New(), uuid.New(), uuid.New()
	f.givenPatron(t, firstPatronID)
	f.givenPatron(t, secondPatronID)
	f.givenAvailableBook(t, bookID)

	now := time.Now()
	firstHold := core.BuildBookPlacedOnHold(
		firstPatronID.String(), bookID.String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)
	secondHold := core.BuildBookPlacedOnHold(
		secondPatronID.String(), bookID.String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)

	require.NoError(t, f.coordinator.HandleBookPlacedOnHold(context.Background(), envelopeOf(firstHold)))

	// act
	err := f.coordinator.HandleBookPlacedOnHold(context.Background(), envelopeOf(secondHold))

	// assert
	require.NoError(t, err)

	events := f.recorder.RecordedEvents()
	require.Len(t, events, 1)
	duplicateFound, ok := events[0].(core.BookDuplicateHoldFound)
	require.True(t, ok)
	assert.Equal(t, firstPatronID.String(), duplicateFound.FirstPatronID)
	assert.Equal(t, secondPatronID.String(), duplicateFound.SecondPatronID)
	assert.Equal(t, bookID.String(), duplicateFound.BookID)

	// the copy stays with the winning patron
	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	onHold, ok := book.(core.BookOnHold)
	require.True(t, ok)
	assert.Equal(t, firstPatronID.String(), onHold.ByPatron)

	// the losing patron has the hold entry that the compensation will cancel
	loser, err := f.patrons.Load(context.Background(), secondPatronID.String())
	require.NoError(t, err)
	assert.True(t, loser.Holds.Has(bookID.String()))
}

func Test_Coordinator_BookPlacedOnHold_OnACheckedOutCopy_LeavesTheCopyUntouched(t *testing.T) {
	// arrange: the hold event is stale, the copy got checked out in the meantime
	f := newFixture()
	holdingPatronID, checkedOutByID, bookID := uuid.New(), uuid.New(), uuid.New()
	f.givenPatron(t, holdingPatronID)

	require.NoError(t, f.books.Save(context.Background(), core.CheckedOutBook{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: checkedOutByID.String(),
	}))

	now := time.Now()
	event := core.BuildBookPlacedOnHold(
		holdingPatronID.String(), bookID.String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)

	// act
	err := f.coordinator.HandleBookPlacedOnHold(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)
	assert.Empty(t, f.recorder.RecordedEvents())

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	checkedOut, ok := book.(core.CheckedOutBook)
	require.True(t, ok)
	assert.Equal(t, checkedOutByID.String(), checkedOut.ByPatron)
}

func Test_Coordinator_BookPlacedOnHold_MissingBook_IsAnInconsistency(t *testing.T) {
	// arrange
	f := newFixture()
	patronID := uuid.New()
	f.givenPatron(t, patronID)

	now := time.Now()
	event := core.BuildBookPlacedOnHold(
		patronID.String(), uuid.New().String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)

	// act
	err := f.coordinator.HandleBookPlacedOnHold(context.Background(), envelopeOf(event))

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, shell.ErrDataInconsistency)
}

func Test_Coordinator_BookHoldCancelled_ReleasesTheBookOfTheHoldingPatron(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()

	f.patrons.GivenPatron(core.BuildPatron(
		patronID.String(),
		core.PatronTypeRegular,
		core.PatronHoldsOf(bookID.String()),
		core.EmptyOverdueCheckouts(),
		core.DefaultPlacingOnHoldPolicies(),
	))

	require.NoError(t, f.books.Save(context.Background(), core.BookOnHold{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: patronID.String(),
	}))

	event := core.BuildBookHoldCancelled(patronID.String(), bookID.String(), time.Now())

	// act
	err := f.coordinator.HandleBookHoldCancelled(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	assert.IsType(t, core.AvailableBook{}, book)

	patron, err := f.patrons.Load(context.Background(), patronID.String())
	require.NoError(t, err)
	assert.False(t, patron.Holds.Has(bookID.String()))
}

func Test_Coordinator_BookHoldCancelled_ByTheLosingPatron_LeavesTheBookWithTheWinner(t *testing.T) {
	// arrange
	f := newFixture()
	winnerID, loserID, bookID := uuid.New(), uuid.New(), uuid.New()

	f.patrons.GivenPatron(core.BuildPatron(
		loserID.String(),
		core.PatronTypeRegular,
		core.PatronHoldsOf(bookID.String()),
		core.EmptyOverdueCheckouts(),
		core.DefaultPlacingOnHoldPolicies(),
	))

	require.NoError(t, f.books.Save(context.Background(), core.BookOnHold{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: winnerID.String(),
	}))

	event := core.BuildBookHoldCancelled(loserID.String(), bookID.String(), time.Now())

	// act
	err := f.coordinator.HandleBookHoldCancelled(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	onHold, ok := book.(core.BookOnHold)
	require.True(t, ok)
	assert.Equal(t, winnerID.String(), onHold.ByPatron)

	loser, err := f.patrons.Load(context.Background(), loserID.String())
	require.NoError(t, err)
	assert.False(t, loser.Holds.Has(bookID.String()))
}

func Test_Coordinator_BookCheckedOut_TransitionsTheBookAndRemovesTheHold(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()

	f.patrons.GivenPatron(core.BuildPatron(
		patronID.String(),
		core.PatronTypeRegular,
		core.PatronHoldsOf(bookID.String()),
		core.EmptyOverdueCheckouts(),
		core.DefaultPlacingOnHoldPolicies(),
	))

	require.NoError(t, f.books.Save(context.Background(), core.BookOnHold{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: patronID.String(),
	}))

	now := time.Now()
	event := core.BuildBookCheckedOut(
		patronID.String(), bookID.String(), core.BookTypeCirculating, now.Add(14*24*time.Hour), now)

	// act
	err := f.coordinator.HandleBookCheckedOut(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	checkedOut, ok := book.(core.CheckedOutBook)
	require.True(t, ok)
	assert.Equal(t, patronID.String(), checkedOut.ByPatron)

	patron, err := f.patrons.Load(context.Background(), patronID.String())
	require.NoError(t, err)
	assert.False(t, patron.Holds.Has(bookID.String()))
}

func Test_Coordinator_BookCheckedOut_OnAnAvailableCopy_LeavesTheCopyUntouched(t *testing.T) {
	// arrange: the checkout event is stale, the copy is available again
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenPatron(t, patronID)
	f.givenAvailableBook(t, bookID)

	now := time.Now()
	event := core.BuildBookCheckedOut(
		patronID.String(), bookID.String(), core.BookTypeCirculating, now.Add(14*24*time.Hour), now)

	// act
	err := f.coordinator.HandleBookCheckedOut(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	assert.IsType(t, core.AvailableBook{}, book)
}

func Test_Coordinator_BookReturned_MakesTheBookAvailableAndClearsTheOverdueCheckout(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()

	f.patrons.GivenPatron(core.BuildPatron(
		patronID.String(),
		core.PatronTypeRegular,
		core.EmptyPatronHolds(),
		core.OverdueCheckoutsOf(bookID.String()),
		core.DefaultPlacingOnHoldPolicies(),
	))

	require.NoError(t, f.books.Save(context.Background(), core.CheckedOutBook{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: patronID.String(),
	}))

	event := core.BuildBookReturned(patronID.String(), bookID.String(), core.BookTypeCirculating, time.Now())

	// act
	err := f.coordinator.HandleBookReturned(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	assert.IsType(t, core.AvailableBook{}, book)

	patron, err := f.patrons.Load(context.Background(), patronID.String())
	require.NoError(t, err)
	assert.Zero(t, patron.NumberOfOverdueCheckouts())
}

func Test_Coordinator_BookReturned_OnACopyHeldBySomeoneElse_LeavesTheCopyUntouched(t *testing.T) {
	// arrange: the return event is stale, the copy is already on hold again
	f := newFixture()
	returningPatronID, holdingPatronID, bookID := uuid.New(), uuid.New(), uuid.New()
	f.givenPatron(t, returningPatronID)

	require.NoError(t, f.books.Save(context.Background(), core.BookOnHold{
		BookID:   bookID.String(),
		BookType: core.BookTypeCirculating,
		ByPatron: holdingPatronID.String(),
	}))

	event := core.BuildBookReturned(
		returningPatronID.String(), bookID.String(), core.BookTypeCirculating, time.Now())

	// act
	err := f.coordinator.HandleBookReturned(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)

	book, err := f.books.Load(context.Background(), bookID.String())
	require.NoError(t, err)
	onHold, ok := book.(core.BookOnHold)
	require.True(t, ok)
	assert.Equal(t, holdingPatronID.String(), onHold.ByPatron)
}

func Test_Coordinator_OverdueCheckoutRegistered_AddsTheOverdueCheckout(t *testing.T) {
	// arrange
	f := newFixture()
	patronID, bookID := uuid.New(), uuid.New()
	f.givenPatron(t, patronID)

	event := core.BuildOverdueCheckoutRegistered(patronID.String(), bookID.String(), time.Now())

	// act
	err := f.coordinator.HandleOverdueCheckoutRegistered(context.Background(), envelopeOf(event))

	// assert
	require.NoError(t, err)
	patron, err := f.patrons.Load(context.Background(), patronID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, patron.NumberOfOverdueCheckouts())
}
