package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/core"
)

func givenPolicyContext(
	t *testing.T,
	bookType core.BookType,
	patron core.Patron,
	duration core.HoldDuration,
) core.PlacingOnHoldContext {

	t.Helper()

	return core.PlacingOnHoldContext{
		Book:         core.AvailableBook{BookID: uuid.New().String(), BookType: bookType},
		Patron:       patron,
		HoldDuration: duration,
	}
}

func Test_OnlyResearcherPatronsCanHoldRestrictedBooks(t *testing.T) {
	now := time.Now()
	regular := givenRegularPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())
	researcher := givenResearcherPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())

	t.Run("rejects a regular patron for a restricted book", func(t *testing.T) {
		ctx := givenPolicyContext(t, core.BookTypeRestricted, regular, givenCloseEndedDuration(t, now, 3))
		assert.NotNil(t, core.OnlyResearcherPatronsCanHoldRestrictedBooks(ctx))
	})

	t.Run("allows a regular patron for a circulating book", func(t *testing.T) {
		ctx := givenPolicyContext(t, core.BookTypeCirculating, regular, givenCloseEndedDuration(t, now, 3))
		assert.Nil(t, core.OnlyResearcherPatronsCanHoldRestrictedBooks(ctx))
	})

	t.Run("allows a researcher for a restricted book", func(t *testing.T) {
		ctx := givenPolicyContext(t, core.BookTypeRestricted, researcher, givenCloseEndedDuration(t, now, 3))
		assert.Nil(t, core.OnlyResearcherPatronsCanHoldRestrictedBooks(ctx))
	})
}

func Test_OverdueCheckoutsRejection(t *testing.T) {
	now := time.Now()

	t.Run("rejects a regular patron with two overdue checkouts", func(t *testing.T) {
		overdue := core.OverdueCheckoutsOf(uuid.New().String(), uuid.New().String())
		patron := givenRegularPatron(core.EmptyPatronHolds(), overdue)
		ctx := givenPolicyContext(t, core.BookTypeCirculating, patron, givenCloseEndedDuration(t, now, 3))

		assert.NotNil(t, core.OverdueCheckoutsRejection(ctx))
	})

	t.Run("allows a regular patron with a single overdue checkout", func(t *testing.T) {
		patron := givenRegularPatron(core.EmptyPatronHolds(), core.OverdueCheckoutsOf(uuid.New().String()))
		ctx := givenPolicyContext(t, core.BookTypeCirculating, patron, givenCloseEndedDuration(t, now, 3))

		assert.Nil(t, core.OverdueCheckoutsRejection(ctx))
	})

	t.Run("allows a researcher regardless of overdue checkouts", func(t *testing.T) {
		overdue := core.OverdueCheckoutsOf(uuid.New().String(), uuid.New().String(), uuid.New().String())
		patron := givenResearcherPatron(core.EmptyPatronHolds(), overdue)
		ctx := givenPolicyContext(t, core.BookTypeCirculating, patron, givenCloseEndedDuration(t, now, 3))

		assert.Nil(t, core.OverdueCheckoutsRejection(ctx))
	})
}

func Test_RegularPatronMaximumNumberOfHolds(t *testing.T) {
	now := time.Now()

	t.Run("rejects a regular patron at the limit", func(t *testing.T) {
		holds := core.PatronHoldsOf(
			uuid.New().String(), uuid.New().String(), uuid.New().String(), uuid.New().String())
		patron := givenRegularPatron(holds, core.EmptyOverdueCheckouts())
		ctx := givenPolicyContext(t, core.BookTypeCirculating, patron, givenCloseEndedDuration(t, now, 3))

		assert.NotNil(t, core.RegularPatronMaximumNumberOfHolds(ctx))
	})

	t.Run("allows a regular patron below the limit", func(t *testing.T) {
		holds := core.PatronHoldsOf(uuid.New().String(), uuid.New().String(), uuid.New().String())
		patron := givenRegularPatron(holds, core.EmptyOverdueCheckouts())
		ctx := givenPolicyContext(t, core.BookTypeCirculating, patron, givenCloseEndedDuration(t, now, 3))

		assert.Nil(t, core.RegularPatronMaximumNumberOfHolds(ctx))
	})

	t.Run("allows a researcher at the limit", func(t *testing.T) {
		holds := core.PatronHoldsOf(
			uuid.New().String(), uuid.New().String(), uuid.New().String(), uuid.New().String())
		patron := givenResearcherPatron(holds, core.EmptyOverdueCheckouts())
		ctx := givenPolicyContext(t, core.BookTypeCirculating, patron, givenCloseEndedDuration(t, now, 3))

		assert.Nil(t, core.RegularPatronMaximumNumberOfHolds(ctx))
	})
}

func Test_OnlyResearcherPatronsCanPlaceOpenEndedHolds(t *testing.T) {
	now := time.Now()
	regular := givenRegularPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())
	researcher := givenResearcherPatron(core.EmptyPatronHolds(), core.EmptyOverdueCheckouts())

	t.Run("rejects a regular patron placing an open-ended hold", func(t *testing.T) {
		ctx := givenPolicyContext(t, core.BookTypeCirculating, regular, core.OpenEndedHoldDuration(now))
		assert.NotNil(t, core.OnlyResearcherPatronsCanPlaceOpenEndedHolds(ctx))
	})

	t.Run("allows a regular patron placing a close-ended hold", func(t *testing.T) {
		ctx := givenPolicyContext(t, core.BookTypeCirculating, regular, givenCloseEndedDuration(t, now, 3))
		assert.Nil(t, core.OnlyResearcherPatronsCanPlaceOpenEndedHolds(ctx))
	})

	t.Run("allows a researcher placing an open-ended hold", func(t *testing.T) {
		ctx := givenPolicyContext(t, core.BookTypeRestricted, researcher, core.OpenEndedHoldDuration(now))
		assert.Nil(t, core.OnlyResearcherPatronsCanPlaceOpenEndedHolds(ctx))
	})
}

func Test_DefaultPlacingOnHoldPolicies_Order(t *testing.T) {
	policies := core.DefaultPlacingOnHoldPolicies()
	assert.Len(t, policies, 4)
}
