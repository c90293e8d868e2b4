package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejects the bearer token
// (or none is present). Callers should send the user back through login.
var ErrUnauthorized = errors.New("not authenticated: run `dms login`")

// ErrNoToken is returned before any request is sent when the session
// carries no bearer token.
var ErrNoToken = errors.New("no session token: run `dms login`")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status   int
	Resource string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: server returned %d: %s", e.Resource, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: server returned %d", e.Resource, e.Status)
}

// IsAuthError reports whether err means the session is missing or expired.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoToken)
}
