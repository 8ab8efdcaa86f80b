package model

// User roles as the backend's `type` field spells them.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the authenticated identity returned by GET /auth/me.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"` // "user" or "admin"
}

// Session couples a bearer token with the identity it was issued for.  It
// is what the session store persists between console invocations.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
