package patronprofile

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/core"
)

const (
	queryType = "PatronProfile"
)

// Query represents the request for one patron's lending profile.
type Query struct {
	PatronID uuid.UUID
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(patronID uuid.UUID) Query {
	return Query{
		PatronID: patronID,
	}
}

// Hold is one active hold in a patron's profile. Till is nil for an open-ended hold.
type Hold struct {
	BookID core.BookIDString
	Till   *time.Time
}

// Checkout is one running checkout in a patron's profile.
type Checkout struct {
	BookID core.BookIDString
	Till   time.Time
}

// PatronProfile is the read model of one patron's current lending state.
type PatronProfile struct {
	PatronID         core.PatronIDString
	PatronType       core.PatronType
	Holds            []Hold
	Checkouts        []Checkout
	OverdueCheckouts []core.BookIDString
}
