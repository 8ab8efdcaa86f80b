// Package admin is the mutation surface of the console: CRUD over ticket
// types and seats plus admin-side booking status transitions.  Validation
// runs before any request leaves the process, and nothing is updated
// optimistically; callers reload the dependent list views after a
// successful mutation.
package admin

import (
	"go.uber.org/zap"

	"ticketdesk/internal/client"
)

// Panel issues admin mutations through the authenticated client.  Every
// operation assumes the caller already passed the admin role guard; the
// server enforces it again with 403 regardless.
type Panel struct {
	API *client.Client
	Log *zap.Logger
}

// New returns a panel bound to the given transport.
func New(api *client.Client, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{API: api, Log: log}
}
