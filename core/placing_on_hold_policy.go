package core

// Rejection is an expected business outcome of policy evaluation, not an error.
type Rejection struct {
	Reason string
}

// PlacingOnHoldContext carries everything a policy may inspect.
type PlacingOnHoldContext struct {
	Book         AvailableBook
	Patron       Patron
	HoldDuration HoldDuration
}

// PlacingOnHoldPolicy decides whether a hold request is allowed.
// A nil result means the policy allows the hold.
type PlacingOnHoldPolicy func(ctx PlacingOnHoldContext) *Rejection

const (
	rejectionRestrictedBook    = "regular patrons cannot place restricted books on hold"
	rejectionOverdueCheckouts  = "regular patrons with at least 2 overdue checkouts cannot place a hold"
	rejectionMaximumHolds      = "regular patrons cannot hold more than 4 books"
	rejectionOpenEndedHold     = "regular patrons cannot place open-ended holds"
)

// DefaultPlacingOnHoldPolicies returns the policy chain in its fixed evaluation order.
// The asymmetry - researchers being unconstrained by everything but storage
// errors - is intentional business policy.
func DefaultPlacingOnHoldPolicies() []PlacingOnHoldPolicy {
	return []PlacingOnHoldPolicy{
		OnlyResearcherPatronsCanHoldRestrictedBooks,
		OverdueCheckoutsRejection,
		RegularPatronMaximumNumberOfHolds,
		OnlyResearcherPatronsCanPlaceOpenEndedHolds,
	}
}

// OnlyResearcherPatronsCanHoldRestrictedBooks rejects regular patrons holding restricted books.
func OnlyResearcherPatronsCanHoldRestrictedBooks(ctx PlacingOnHoldContext) *Rejection {
	if ctx.Book.BookType == BookTypeRestricted && ctx.Patron.IsRegular() {
		return &Rejection{Reason: rejectionRestrictedBook}
	}

	return nil
}

// OverdueCheckoutsRejection rejects regular patrons with two or more overdue checkouts.
func OverdueCheckoutsRejection(ctx PlacingOnHoldContext) *Rejection {
	if ctx.Patron.IsRegular() && ctx.Patron.NumberOfOverdueCheckouts() >= 2 {
		return &Rejection{Reason: rejectionOverdueCheckouts}
	}

	return nil
}

// RegularPatronMaximumNumberOfHolds rejects regular patrons at the concurrent-holds limit.
func RegularPatronMaximumNumberOfHolds(ctx PlacingOnHoldContext) *Rejection {
	if ctx.Patron.IsRegular() && ctx.Patron.NumberOfHolds() >= MaxNumberOfHolds {
		return &Rejection{Reason: rejectionMaximumHolds}
	}

	return nil
}

// OnlyResearcherPatronsCanPlaceOpenEndedHolds rejects regular patrons placing open-ended holds.
func OnlyResearcherPatronsCanPlaceOpenEndedHolds(ctx PlacingOnHoldContext) *Rejection {
	if ctx.HoldDuration.IsOpenEnded() && ctx.Patron.IsRegular() {
		return &Rejection{Reason: rejectionOpenEndedHold}
	}

	return nil
}
