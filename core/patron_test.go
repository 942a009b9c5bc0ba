package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/core"
)

func givenRegularPatron(holds core.PatronHolds, overdue core.OverdueCheckouts) core.Patron {
	return core.BuildPatron(
		uuid.New().String(), core.PatronTypeRegular, holds, overdue, core.DefaultPlacingOnHoldPolicies())
}

func givenResearcherPatron(holds core.PatronHolds, overdue core.OverdueCheckouts) core.Patron {
	return core.BuildPatron(
		uuid.New().String(), core.PatronTypeResearcher, holds, overdue, core.DefaultPlacingOnHoldPolicies())
}

func givenCloseEndedDuration(t *testing.T, from time.Time, days int) core.HoldDuration {
	t.Helper()

	numberOfDays, err := core.NewNumberOfDays(days)
	require.NoError(t, err)

	return core.CloseEndedHoldDuration(from, numberOfDays)
}

func assertSingleSuccessEvent[E core.DomainEvent](t *testing.T, result core.DecisionResult) E {
	t.Helper()

	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)

	event, ok := result.Events[0].(E)
	require.True(t, ok, "unexpected event type %T", result.Events[0])

	return event
}

func Test_PlaceOnHold_Success_ForRegularPatronAndCirculatingBook(t *testing.T) {
	// arrange
	now := time.Now()
	patron := givenRegularPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeCirculating}

	// act
	result := patron.PlaceOnHold(book, givenCloseEndedDuration(t, now, 5), now)

	// assert
	event := assertSingleSuccessEvent[core.BookPlacedOnHold](t, result)
	assert.Equal(t, patron.PatronID, event.PatronID)
	assert.Equal(t, book.BookID, event.BookID)
	assert.False(t, event.IsOpenEnded())
}

func Test_PlaceOnHold_EmitsMaximumHoldsReachedWarning_AtThreeToFour(t *testing.T) {
	// arrange
	now := time.Now()
	holds := core.PatronHoldsOf(uuid.New().String(), uuid.New().String(), uuid.New().String())
	patron := givenRegularPatron(holds, core.EmptyOverdueCheckouts())
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeCirculating}

	// act
	result := patron.PlaceOnHold(book, givenCloseEndedDuration(t, now, 5), now)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 2)
	assert.IsType(t, core.BookPlacedOnHold{}, result.Events[0])
	assert.IsType(t, core.MaximumNumberOfHoldsReached{}, result.Events[1])
}

func Test_PlaceOnHold_Rejected_ForRegularPatronWithFourHolds(t *testing.T) {
	// arrange
	now := time.Now()
	holds := core.PatronHoldsOf(
		uuid.New().String(), uuid.New().String(), uuid.New().String(), uuid.New().String())
	patron := givenRegularPatron(holds, core.EmptyOverdueCheckouts())
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeCirculating}

	// act
	result := patron.PlaceOnHold(book, givenCloseEndedDuration(t, now, 5), now)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrHoldRejected)

	failed := result.Events[0].(core.BookHoldFailed)
	assert.Contains(t, failed.Reason, "4")
}

func Test_PlaceOnHold_Rejected_ForRegularPatronWithTwoOverdueCheckouts(t *testing.T) {
	// arrange
	now := time.Now()
	overdue := core.OverdueCheckoutsOf(uuid.New().String(), uuid.New().String())
	patron := givenRegularPatron(core.EmptyPatronHolds(), overdue)
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeCirculating}

	// act
	result := patron.PlaceOnHold(book, givenCloseEndedDuration(t, now, 5), now)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrHoldRejected)
}

func Test_PlaceOnHold_Success_ForRegularPatronWithOneOverdueCheckout(t *testing.T) {
	// arrange
	now := time.Now()
	patron := givenRegularPatron(core.EmptyPatronHolds(), core.OverdueCheckoutsOf(uuid.New().String()))
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeCirculating}

	// act
	result := patron.PlaceOnHold(book, givenCloseEndedDuration(t, now, 5), now)

	// assert
	assertSingleSuccessEvent[core.BookPlacedOnHold](t, result)
}

func Test_PlaceOnHold_Rejected_ForRegularPatronAndRestrictedBook(t *testing.T) {
	// arrange
	now := time.Now()
	patron := givenRegularPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeRestricted}

	// act
	result := patron.PlaceOnHold(book, givenCloseEndedDuration(t, now, 5), now)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrHoldRejected)
}

func Test_PlaceOnHold_Rejected_ForRegularPatronAndOpenEndedHold(t *testing.T) {
	// arrange
	now := time.Now()
	patron := givenRegularPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeCirculating}

	// act
	result := patron.PlaceOnHold(book, core.OpenEndedHoldDuration(now), now)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrHoldRejected)
}

func Test_PlaceOnHold_Success_ForResearcherRegardlessOfLimits(t *testing.T) {
	// arrange: a researcher over every regular-patron limit at once
	now := time.Now()
	holds := core.PatronHoldsOf(
		uuid.New().String(), uuid.New().String(), uuid.New().String(),
		uuid.New().String(), uuid.New().String())
	overdue := core.OverdueCheckoutsOf(uuid.New().String(), uuid.New().String(), uuid.New().String())
	patron := givenResearcherPatron(holds, overdue)
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeRestricted}

	// act
	result := patron.PlaceOnHold(book, core.OpenEndedHoldDuration(now), now)

	// assert
	assertSingleSuccessEvent[core.BookPlacedOnHold](t, result)
}

func Test_PlaceOnHold_FirstRejectingPolicyWins(t *testing.T) {
	// arrange: restricted book AND too many overdue checkouts - the restricted
	// book policy is evaluated first and must determine the reason
	now := time.Now()
	overdue := core.OverdueCheckoutsOf(uuid.New().String(), uuid.New().String())
	patron := givenRegularPatron(core.EmptyPatronHolds(), overdue)
	book := core.AvailableBook{BookID: uuid.New().String(), BookType: core.BookTypeRestricted}

	// act
	result := patron.PlaceOnHold(book, givenCloseEndedDuration(t, now, 5), now)

	// assert
	failed := result.Events[0].(core.BookHoldFailed)
	assert.Contains(t, failed.Reason, "restricted")
}

func Test_CancelHold_Success_WhenPatronHoldsTheBook(t *testing.T) {
	// arrange
	now := time.Now()
	bookID := uuid.New().String()
	patron := givenRegularPatron(core.PatronHoldsOf(bookID), core.EmptyOverdueCheckouts())
	book := core.BookOnHold{BookID: bookID, BookType: core.BookTypeCirculating, ByPatron: patron.PatronID}

	// act
	result := patron.CancelHold(book, now)

	// assert
	event := assertSingleSuccessEvent[core.BookHoldCancelled](t, result)
	assert.Equal(t, bookID, event.BookID)
}

func Test_CancelHold_Fails_WhenPatronDoesNotHoldTheBook(t *testing.T) {
	// arrange
	now := time.Now()
	patron := givenRegularPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())
	book := core.BookOnHold{BookID: uuid.New().String(), BookType: core.BookTypeCirculating, ByPatron: patron.PatronID}

	// act
	result := patron.CancelHold(book, now)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrBookNotHeld)

	failed := result.Events[0].(core.BookHoldCancellingFailed)
	assert.Equal(t, core.CancellingFailedBookNotHeld, failed.Reason)
}

func Test_CheckOut_Success_WhenPatronHoldsTheBook(t *testing.T) {
	// arrange
	now := time.Now()
	bookID := uuid.New().String()
	patron := givenRegularPatron(core.PatronHoldsOf(bookID), core.EmptyOverdueCheckouts())
	book := core.BookOnHold{BookID: bookID, BookType: core.BookTypeCirculating, ByPatron: patron.PatronID}

	days, err := core.NewNumberOfDays(10)
	require.NoError(t, err)
	duration, err := core.NewCheckoutDuration(now, days)
	require.NoError(t, err)

	// act
	result := patron.CheckOut(book, duration, now)

	// assert
	event := assertSingleSuccessEvent[core.BookCheckedOut](t, result)
	assert.Equal(t, core.ToOccurredAt(now).Add(10*24*time.Hour), event.Till)
}

func Test_CheckOut_Fails_WhenPatronDoesNotHoldTheBook(t *testing.T) {
	// arrange
	now := time.Now()
	patron := givenRegularPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())
	book := core.BookOnHold{BookID: uuid.New().String(), BookType: core.BookTypeCirculating, ByPatron: patron.PatronID}

	// act
	result := patron.CheckOut(book, core.MaxCheckoutDuration(now), now)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrBookNotHeld)
	assert.IsType(t, core.BookCheckingOutFailed{}, result.Events[0])
}

func Test_ReturnBook_AlwaysSucceeds(t *testing.T) {
	// arrange
	now := time.Now()
	bookID := uuid.New().String()
	patron := givenRegularPatron(core.EmptyPatronHolds(), core.OverdueCheckoutsOf(bookID))
	book := core.CheckedOutBook{BookID: bookID, BookType: core.BookTypeCirculating, ByPatron: patron.PatronID}

	// act
	result := patron.ReturnBook(book, now)

	// assert
	event := assertSingleSuccessEvent[core.BookReturned](t, result)
	assert.Equal(t, bookID, event.BookID)
}
