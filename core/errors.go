package core

import (
	"errors"
)

var (
	// ErrInvalidState is returned when an event does not match the identity or
	// ownership of the aggregate it is applied to.
	ErrInvalidState = errors.New("event does not match current aggregate state")

	// ErrHoldRejected is returned when a placing-on-hold policy rejects a hold request.
	ErrHoldRejected = errors.New("placing book on hold rejected by policy")

	// ErrBookNotHeld is returned when a patron acts on a hold they do not have.
	ErrBookNotHeld = errors.New("patron does not hold this book")

	// ErrInvalidDuration is returned when a hold or checkout duration is out of range.
	ErrInvalidDuration = errors.New("invalid duration")
)
