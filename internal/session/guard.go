package session // guard.go enforces the role check protected commands start with

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library used to read claims from the stored token

	"ticketdesk/internal/model"
)

// Redirect is the result of a failed guard check.  It tells the
// presentation layer which login entry point to send the user to; it is
// deliberately not an error, because an unauthenticated user running a
// protected command is an expected state, not a failure.
type Redirect int

const (
	RedirectNone       Redirect = iota // guard passed, keep rendering
	RedirectUserLogin                  // navigate to the user login
	RedirectAdminLogin                 // navigate to the admin login
)

// redirectFor picks the login surface matching the demanded role.
func redirectFor(role string) Redirect {
	if role == model.RoleAdmin {
		return RedirectAdminLogin
	}
	return RedirectUserLogin
}

// RequireRole reads the session and verifies that it exists, carries the
// demanded role, and holds a token that has not visibly expired.  On any
// failure the session is cleared and the matching login redirect is
// returned.  Every protected command must call this before doing anything
// else; it is the client-side mirror of the server's role middleware.
func RequireRole(store Store, role string) (*model.Session, Redirect) {
	s, err := store.Get()
	if err != nil || s == nil || s.AccessToken == "" {
		_ = store.Clear()
		return nil, redirectFor(role)
	}
	if s.User.Type != role {
		_ = store.Clear()
		return nil, redirectFor(role)
	}
	if TokenExpired(s.AccessToken) {
		_ = store.Clear()
		return nil, redirectFor(role)
	}
	return s, RedirectNone
}

// TokenExpired decodes the token's claims without verifying the signature
// (the signing secret lives on the server; the client can only read, not
// trust).  A token that cannot be decoded at all, or whose exp claim is in
// the past, counts as expired.  A token without an exp claim does not: the
// server remains the authority and will answer 401 if it disagrees.
func TokenExpired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
