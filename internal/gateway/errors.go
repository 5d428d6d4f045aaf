package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when the login endpoint rejects the
	// supplied email/password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned when an authenticated call comes back
	// 401. The session has already been wiped by the time callers see it;
	// their only move is to send the user back to login.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotAuthenticated is returned when no token is available for an
	// authenticated call.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// RequestError carries the HTTP status and response body of a failed call.
// Callers surface it to the user as a one-shot notice; nothing is retried.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Body)
}
