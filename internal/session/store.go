// Package session persists the console's authenticated state between
// invocations: the bearer token, the identity it belongs to, and the id of
// the booking currently being paid for.  It carries no logic beyond
// get/set/clear plus the role guard every protected command must pass
// through.
package session

import "ticketdesk/internal/model"

// Store is a key-value persistence surface for the session and the active
// booking reference.  Get returns (nil, nil) when no session is stored.
// Clear variants are idempotent: clearing an absent value succeeds.
//
// The session (token + identity) and the active booking id have separate
// lifecycles: a 401 or logout clears the former, while completing or
// cancelling a payment clears only the latter.
type Store interface {
	Get() (*model.Session, error)
	Set(s *model.Session) error
	Clear() error

	// ActiveBookingID returns the stored booking id, or 0 when none is set.
	ActiveBookingID() (int64, error)
	SetActiveBookingID(id int64) error
	ClearActiveBookingID() error
}
