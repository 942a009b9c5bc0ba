package httpapi

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/features/query/patronprofile"
)

type profileHold struct {
	BookID string     `json:"book_id"`
	Till   *time.Time `json:"till,omitempty"`
}

type profileCheckout struct {
	BookID string    `json:"book_id"`
	Till   time.Time `json:"till"`
}

type profileResponse struct {
	PatronID         string            `json:"patron_id"`
	PatronType       string            `json:"patron_type"`
	Holds            []profileHold     `json:"holds"`
	Checkouts        []profileCheckout `json:"checkouts"`
	OverdueCheckouts []string          `json:"overdue_checkouts"`
}

func profileResponseFrom(profile patronprofile.PatronProfile) profileResponse {
	holds := make([]profileHold, 0, len(profile.Holds))
	for _, hold := range profile.Holds {
		holds = append(holds, profileHold{BookID: hold.BookID, Till: hold.Till})
	}

	checkouts := make([]profileCheckout, 0, len(profile.Checkouts))
	for _, checkout := range profile.Checkouts {
		checkouts = append(checkouts, profileCheckout{BookID: checkout.BookID, Till: checkout.Till})
	}

	overdue := make([]string, 0, len(profile.OverdueCheckouts))
	overdue = append(overdue, profile.OverdueCheckouts...)

	return profileResponse{
		PatronID:         profile.PatronID,
		PatronType:       string(profile.PatronType),
		Holds:            holds,
		Checkouts:        checkouts,
		OverdueCheckouts: overdue,
	}
}
