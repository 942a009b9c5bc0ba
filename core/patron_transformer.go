package core

// TransformPatron applies a PatronEvent to a Patron and returns the next
// immutable Patron instance. This is the single place that changes hold and
// overdue membership - both the live command path and the replay/sync path
// route through it. Events that do not affect patron state pass through
// unchanged, which keeps at-least-once delivery safe.
func TransformPatron(patron Patron, event PatronEvent) Patron {
	switch e := event.(type) {
	case BookPlacedOnHold:
		patron.Holds = patron.Holds.Add(e.BookID)

	case BookCheckedOut:
		patron.Holds = patron.Holds.Remove(e.BookID)

	case BookHoldCancelled:
		patron.Holds = patron.Holds.Remove(e.BookID)

	case BookHoldExpired:
		patron.Holds = patron.Holds.Remove(e.BookID)

	case OverdueCheckoutRegistered:
		patron.OverdueCheckouts = patron.OverdueCheckouts.Add(e.BookID)

	case BookReturned:
		patron.OverdueCheckouts = patron.OverdueCheckouts.Remove(e.BookID)
	}

	return patron
}
