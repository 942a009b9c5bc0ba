package core

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// MaxNumberOfHolds is the maximum number of concurrent holds for a regular patron.
const MaxNumberOfHolds = 4

// PatronHolds is the immutable set of book copies a patron currently holds.
type PatronHolds struct {
	books map[BookIDString]struct{}
}

// EmptyPatronHolds creates an empty hold set.
func EmptyPatronHolds() PatronHolds {
	return PatronHolds{books: map[BookIDString]struct{}{}}
}

// PatronHoldsOf creates a hold set containing the given book copies.
func PatronHoldsOf(bookIDs ...BookIDString) PatronHolds {
	holds := EmptyPatronHolds()
	for _, bookID := range bookIDs {
		holds.books[bookID] = struct{}{}
	}

	return holds
}

// Has returns true if the book copy is in the hold set.
func (h PatronHolds) Has(bookID BookIDString) bool {
	_, ok := h.books[bookID]
	return ok
}

// Count returns the number of active holds.
func (h PatronHolds) Count() int {
	return len(h.books)
}

// ReachesMaximumAfterHolding returns true if adding one more hold makes the
// count equal to MaxNumberOfHolds.
func (h PatronHolds) ReachesMaximumAfterHolding() bool {
	return h.Count()+1 == MaxNumberOfHolds
}

// Add returns a new hold set with the book copy added (idempotent membership).
func (h PatronHolds) Add(bookID BookIDString) PatronHolds {
	next := h.copied()
	next.books[bookID] = struct{}{}

	return next
}

// Remove returns a new hold set with the book copy removed.
func (h PatronHolds) Remove(bookID BookIDString) PatronHolds {
	next := h.copied()
	delete(next.books, bookID)

	return next
}

// AsSlice returns the held book copy identifiers in stable order.
func (h PatronHolds) AsSlice() []BookIDString {
	ids := make([]BookIDString, 0, len(h.books))
	for bookID := range h.books {
		ids = append(ids, bookID)
	}

	sort.Strings(ids)

	return ids
}

func (h PatronHolds) copied() PatronHolds {
	books := make(map[BookIDString]struct{}, len(h.books))
	for bookID := range h.books {
		books[bookID] = struct{}{}
	}

	return PatronHolds{books: books}
}

// OverdueCheckouts is the immutable set of book copies a patron has checked out past due.
type OverdueCheckouts struct {
	books map[BookIDString]struct{}
}

// EmptyOverdueCheckouts creates an empty overdue set.
func EmptyOverdueCheckouts() OverdueCheckouts {
	return OverdueCheckouts{books: map[BookIDString]struct{}{}}
}

// OverdueCheckoutsOf creates an overdue set containing the given book copies.
func OverdueCheckoutsOf(bookIDs ...BookIDString) OverdueCheckouts {
	overdue := EmptyOverdueCheckouts()
	for _, bookID := range bookIDs {
		overdue.books[bookID] = struct{}{}
	}

	return overdue
}

// Has returns true if the book copy is in the overdue set.
func (o OverdueCheckouts) Has(bookID BookIDString) bool {
	_, ok := o.books[bookID]
	return ok
}

// Count returns the number of overdue checkouts.
func (o OverdueCheckouts) Count() int {
	return len(o.books)
}

// Add returns a new overdue set with the book copy added.
func (o OverdueCheckouts) Add(bookID BookIDString) OverdueCheckouts {
	next := o.copied()
	next.books[bookID] = struct{}{}

	return next
}

// Remove returns a new overdue set with the book copy removed.
func (o OverdueCheckouts) Remove(bookID BookIDString) OverdueCheckouts {
	next := o.copied()
	delete(next.books, bookID)

	return next
}

// AsSlice returns the overdue book copy identifiers in stable order.
func (o OverdueCheckouts) AsSlice() []BookIDString {
	ids := make([]BookIDString, 0, len(o.books))
	for bookID := range o.books {
		ids = append(ids, bookID)
	}

	sort.Strings(ids)

	return ids
}

func (o OverdueCheckouts) copied() OverdueCheckouts {
	books := make(map[BookIDString]struct{}, len(o.books))
	for bookID := range o.books {
		books[bookID] = struct{}{}
	}

	return OverdueCheckouts{books: books}
}

// Patron is the aggregate holding a patron's active holds and overdue checkouts.
// Hold/overdue membership is mutated exclusively by applying a PatronEvent
// through TransformPatron; command methods only produce events.
type Patron struct {
	PatronID         PatronIDString
	PatronType       PatronType
	Holds            PatronHolds
	OverdueCheckouts OverdueCheckouts
	Policies         []PlacingOnHoldPolicy
}

// BuildPatron creates a Patron with the given state and the injected policy chain.
func BuildPatron(
	patronID PatronIDString,
	patronType PatronType,
	holds PatronHolds,
	overdueCheckouts OverdueCheckouts,
	policies []PlacingOnHoldPolicy,
) Patron {

	return Patron{
		PatronID:         patronID,
		PatronType:       patronType,
		Holds:            holds,
		OverdueCheckouts: overdueCheckouts,
		Policies:         policies,
	}
}

// IsRegular returns true for a regular patron.
func (p Patron) IsRegular() bool {
	return p.PatronType == PatronTypeRegular
}

// NumberOfHolds returns the number of active holds.
func (p Patron) NumberOfHolds() int {
	return p.Holds.Count()
}

// NumberOfOverdueCheckouts returns the number of overdue checkouts.
func (p Patron) NumberOfOverdueCheckouts() int {
	return p.OverdueCheckouts.Count()
}

// PlaceOnHold evaluates the policy chain against the available book and, if no
// policy rejects, produces a BookPlacedOnHold event. When the new hold makes
// the patron's count reach the maximum, a MaximumNumberOfHoldsReached warning
// event accompanies it.
//
// Business Rules:
//
//	GIVEN: An available book and a patron with the injected policy chain
//	WHEN: PlaceOnHold is invoked
//	THEN: BookPlacedOnHold event is generated (+ MaximumNumberOfHoldsReached at 3 -> 4)
//	ERROR: the first rejecting policy's reason, as a BookHoldFailed event
func (p Patron) PlaceOnHold(book AvailableBook, holdDuration HoldDuration, occurredAt time.Time) DecisionResult {
	if rejection := p.canHold(book, holdDuration); rejection != nil {
		event := BuildBookHoldFailed(p.PatronID, book.BookID, rejection.Reason, occurredAt)
		return ErrorDecision(event, errors.Join(ErrHoldRejected, errors.New(rejection.Reason)))
	}

	events := DomainEvents{
		BuildBookPlacedOnHold(p.PatronID, book.BookID, book.BookType, holdDuration, occurredAt),
	}

	if p.Holds.ReachesMaximumAfterHolding() {
		events = append(events, BuildMaximumNumberOfHoldsReached(p.PatronID, occurredAt))
	}

	return SuccessDecision(events...)
}

// CancelHold produces a BookHoldCancelled event if the patron holds the book.
func (p Patron) CancelHold(book BookOnHold, occurredAt time.Time) DecisionResult {
	if !p.Holds.Has(book.BookID) {
		event := BuildBookHoldCancellingFailed(
			p.PatronID,
			book.BookID,
			CancellingFailedBookNotHeld,
			"patron has no active hold on this book",
			occurredAt,
		)

		return ErrorDecision(event, fmt.Errorf("%w: %s", ErrBookNotHeld, book.BookID))
	}

	return SuccessDecision(BuildBookHoldCancelled(p.PatronID, book.BookID, occurredAt))
}

// CheckOut produces a BookCheckedOut event if the patron holds the book.
// The duration cap is enforced by NewCheckoutDuration, not here.
func (p Patron) CheckOut(book BookOnHold, duration CheckoutDuration, occurredAt time.Time) DecisionResult {
	if !p.Holds.Has(book.BookID) {
		event := BuildBookCheckingOutFailed(
			p.PatronID,
			book.BookID,
			"patron tries to check out a book they did not place on hold",
			occurredAt,
		)

		return ErrorDecision(event, fmt.Errorf("%w: %s", ErrBookNotHeld, book.BookID))
	}

	return SuccessDecision(BuildBookCheckedOut(p.PatronID, book.BookID, book.BookType, duration.Till(), occurredAt))
}

// ReturnBook always succeeds, producing a BookReturned event.
func (p Patron) ReturnBook(book CheckedOutBook, occurredAt time.Time) DecisionResult {
	return SuccessDecision(BuildBookReturned(p.PatronID, book.BookID, book.BookType, occurredAt))
}

// canHold evaluates every policy in order; the first rejection wins.
func (p Patron) canHold(book AvailableBook, holdDuration HoldDuration) *Rejection {
	ctx := PlacingOnHoldContext{
		Book:         book,
		Patron:       p,
		HoldDuration: holdDuration,
	}

	for _, policy := range p.Policies {
		if rejection := policy(ctx); rejection != nil {
			return rejection
		}
	}

	return nil
}
