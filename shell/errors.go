package shell

import "errors"

var (
	// ErrBookNotFound is returned when a book copy does not exist in storage.
	ErrBookNotFound = errors.New("book not found")

	// ErrPatronNotFound is returned when a patron does not exist in storage.
	ErrPatronNotFound = errors.New("patron not found")

	// ErrDataInconsistency is returned when storage contradicts an event that was
	// already published, e.g. a BookPlacedOnHold event referencing a book that
	// cannot be loaded anymore.
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrPublishFailed is returned when an event could not be handed to the event bus.
	ErrPublishFailed = errors.New("publishing event failed")
)
