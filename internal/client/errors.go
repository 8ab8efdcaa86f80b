// Package client issues authenticated HTTP requests against the booking
// backend.  This file defines the error taxonomy shared by every call site.
// These values allow higher layers to distinguish between failure
// scenarios without parsing message strings: ErrUnauthorized means the
// session is gone and the user must log in again, ValidationError means the
// request was rejected locally before any network traffic, HTTPError
// carries a server rejection, and NetworkError wraps a transport failure.
package client

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any 401 response.  By the time a caller
// sees it the session has already been cleared; the only correct reaction
// is to stop and send the user to the login surface.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports a client-side rejection.  No network call was
// made and no state changed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// HTTPError is any non-2xx, non-401 response.  Detail carries the `detail`
// field of the JSON error body when the server provided one.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// NetworkError wraps a transport-level failure (connection refused, DNS,
// timeout).  The request may or may not have reached the server; the client
// never retries on its own.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }
