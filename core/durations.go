package core

import (
	"errors"
	"fmt"
	"time"
)

// MaxCheckoutDurationDays caps how long a book copy may be checked out.
const MaxCheckoutDurationDays = 60

// NumberOfDays is a positive number of whole days.
type NumberOfDays int

// NewNumberOfDays validates that days is a positive integer.
func NewNumberOfDays(days int) (NumberOfDays, error) {
	if days <= 0 {
		return 0, errors.Join(ErrInvalidDuration, fmt.Errorf("number of days must be positive: %d", days))
	}

	return NumberOfDays(days), nil
}

// HoldDuration describes how long a hold lasts. A hold without an expiry is
// open-ended and never expires automatically.
type HoldDuration struct {
	from time.Time
	till *time.Time
}

// OpenEndedHoldDuration creates a hold duration without an expiry.
func OpenEndedHoldDuration(from time.Time) HoldDuration {
	return HoldDuration{from: ToOccurredAt(from)}
}

// CloseEndedHoldDuration creates a hold duration expiring after the given number of days.
func CloseEndedHoldDuration(from time.Time, days NumberOfDays) HoldDuration {
	till := ToOccurredAt(from).Add(time.Duration(days) * 24 * time.Hour)

	return HoldDuration{from: ToOccurredAt(from), till: &till}
}

// From returns when the hold starts.
func (d HoldDuration) From() time.Time {
	return d.from
}

// HoldTill returns the expiry of the hold, or nil for an open-ended hold.
func (d HoldDuration) HoldTill() *time.Time {
	if d.till == nil {
		return nil
	}

	till := *d.till

	return &till
}

// IsOpenEnded returns true if the hold has no expiry.
func (d HoldDuration) IsOpenEnded() bool {
	return d.till == nil
}

// CheckoutDuration describes how long a book copy is checked out.
// It can never exceed MaxCheckoutDurationDays; this is validated at construction.
type CheckoutDuration struct {
	from time.Time
	days NumberOfDays
}

// NewCheckoutDuration validates that the duration does not exceed the maximum.
func NewCheckoutDuration(from time.Time, days NumberOfDays) (CheckoutDuration, error) {
	if int(days) > MaxCheckoutDurationDays {
		return CheckoutDuration{}, errors.Join(
			ErrInvalidDuration,
			fmt.Errorf("checkout duration must not exceed %d days: %d", MaxCheckoutDurationDays, days),
		)
	}

	return CheckoutDuration{from: ToOccurredAt(from), days: days}, nil
}

// MaxCheckoutDuration creates the longest allowed checkout duration.
func MaxCheckoutDuration(from time.Time) CheckoutDuration {
	return CheckoutDuration{from: ToOccurredAt(from), days: MaxCheckoutDurationDays}
}

// From returns when the checkout starts.
func (d CheckoutDuration) From() time.Time {
	return d.from
}

// Till returns the due date of the checkout.
func (d CheckoutDuration) Till() time.Time {
	return d.from.Add(time.Duration(d.days) * 24 * time.Hour)
}
