package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// BookIDString represents a book identifier
type BookIDString = string

// PatronIDString represents a patron identifier
type PatronIDString = string

// EventIDString represents a domain event identifier
type EventIDString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// BookType classifies a book copy for lending purposes.
type BookType string

const (
	// BookTypeCirculating marks a book copy every patron may hold.
	BookTypeCirculating BookType = "Circulating"

	// BookTypeRestricted marks a book copy only researcher patrons may hold.
	BookTypeRestricted BookType = "Restricted"
)

// PatronType classifies a patron for lending purposes.
type PatronType string

const (
	// PatronTypeRegular is a patron bound by all placing-on-hold policies.
	PatronTypeRegular PatronType = "Regular"

	// PatronTypeResearcher is a patron exempt from most placing-on-hold policies.
	PatronTypeResearcher PatronType = "Researcher"
)
