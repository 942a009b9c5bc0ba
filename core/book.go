package core

import (
	"errors"
	"fmt"
	"time"
)

// Book is the sealed interface over the three lifecycle states of a book copy:
// AvailableBook -> BookOnHold -> CheckedOutBook -> AvailableBook ...
// Transitions take the current variant and an event and return the next variant
// or an ErrInvalidState failure; a new immutable value is returned, the current
// one is never mutated.
type Book interface {
	ID() BookIDString
	Type() BookType

	sealedBook()
}

// AvailableBook is a book copy that can be placed on hold by any eligible patron.
type AvailableBook struct {
	BookID   BookIDString
	BookType BookType
}

// BookOnHold is a book copy reserved by one patron.
// HoldTill is nil for an open-ended hold, which never expires automatically.
type BookOnHold struct {
	BookID   BookIDString
	BookType BookType
	ByPatron PatronIDString
	HoldTill *time.Time
}

// CheckedOutBook is a book copy currently lent to one patron.
type CheckedOutBook struct {
	BookID   BookIDString
	BookType BookType
	ByPatron PatronIDString
}

// ID returns the book copy identifier.
func (b AvailableBook) ID() BookIDString { return b.BookID }

// Type returns the book type.
func (b AvailableBook) Type() BookType { return b.BookType }

func (b AvailableBook) sealedBook() {}

// ID returns the book copy identifier.
func (b BookOnHold) ID() BookIDString { return b.BookID }

// Type returns the book type.
func (b BookOnHold) Type() BookType { return b.BookType }

func (b BookOnHold) sealedBook() {}

// ID returns the book copy identifier.
func (b CheckedOutBook) ID() BookIDString { return b.BookID }

// Type returns the book type.
func (b CheckedOutBook) Type() BookType { return b.BookType }

func (b CheckedOutBook) sealedBook() {}

// OnPlacedOnHold transitions an available book to on-hold for the event's patron.
func (b AvailableBook) OnPlacedOnHold(event BookPlacedOnHold) (BookOnHold, error) {
	if err := matchBookID(b.BookID, event.BookID); err != nil {
		return BookOnHold{}, err
	}

	if err := matchBookType(b.BookType, event.BookType); err != nil {
		return BookOnHold{}, err
	}

	return BookOnHold{
		BookID:   b.BookID,
		BookType: b.BookType,
		ByPatron: event.PatronID,
		HoldTill: event.HoldTill,
	}, nil
}

// OnHoldCancelled transitions a book on hold back to available.
func (b BookOnHold) OnHoldCancelled(event BookHoldCancelled) (AvailableBook, error) {
	if err := matchBookID(b.BookID, event.BookID); err != nil {
		return AvailableBook{}, err
	}

	if err := matchPatron(b.ByPatron, event.PatronID); err != nil {
		return AvailableBook{}, err
	}

	return AvailableBook{BookID: b.BookID, BookType: b.BookType}, nil
}

// OnHoldExpired transitions a book on hold back to available.
func (b BookOnHold) OnHoldExpired(event BookHoldExpired) (AvailableBook, error) {
	if err := matchBookID(b.BookID, event.BookID); err != nil {
		return AvailableBook{}, err
	}

	if err := matchPatron(b.ByPatron, event.PatronID); err != nil {
		return AvailableBook{}, err
	}

	return AvailableBook{BookID: b.BookID, BookType: b.BookType}, nil
}

// OnCheckedOut transitions a book on hold to checked-out by the holding patron.
func (b BookOnHold) OnCheckedOut(event BookCheckedOut) (CheckedOutBook, error) {
	if err := matchBookID(b.BookID, event.BookID); err != nil {
		return CheckedOutBook{}, err
	}

	if err := matchBookType(b.BookType, event.BookType); err != nil {
		return CheckedOutBook{}, err
	}

	if err := matchPatron(b.ByPatron, event.PatronID); err != nil {
		return CheckedOutBook{}, err
	}

	return CheckedOutBook{
		BookID:   b.BookID,
		BookType: b.BookType,
		ByPatron: event.PatronID,
	}, nil
}

// OnReturned transitions a checked-out book back to available.
func (b CheckedOutBook) OnReturned(event BookReturned) (AvailableBook, error) {
	if err := matchBookID(b.BookID, event.BookID); err != nil {
		return AvailableBook{}, err
	}

	if err := matchBookType(b.BookType, event.BookType); err != nil {
		return AvailableBook{}, err
	}

	if err := matchPatron(b.ByPatron, event.PatronID); err != nil {
		return AvailableBook{}, err
	}

	return AvailableBook{BookID: b.BookID, BookType: b.BookType}, nil
}

func matchBookID(current BookIDString, fromEvent BookIDString) error {
	if current != fromEvent {
		return errors.Join(
			ErrInvalidState,
			fmt.Errorf("book id mismatch: event refers to %s, book is %s", fromEvent, current),
		)
	}

	return nil
}

func matchBookType(current BookType, fromEvent BookType) error {
	if current != fromEvent {
		return errors.Join(
			ErrInvalidState,
			fmt.Errorf("book type mismatch: event refers to %s, book is %s", fromEvent, current),
		)
	}

	return nil
}

func matchPatron(current PatronIDString, fromEvent PatronIDString) error {
	if current != fromEvent {
		return errors.Join(
			ErrInvalidState,
			fmt.Errorf("patron mismatch: event refers to %s, book is held by %s", fromEvent, current),
		)
	}

	return nil
}
