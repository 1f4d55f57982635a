package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error classes for failed API calls. Every asynchronous failure is
// classified at the call point; nothing propagates unclassified.
var (
	// ErrNetwork marks transport failures and timeouts. Recoverable by
	// rollback plus a user notification.
	ErrNetwork = errors.New("client: network failure")
	// ErrAuth marks 401/403 responses. The session's expiry hook fires as
	// a side effect.
	ErrAuth = errors.New("client: authentication rejected")
	// ErrServer marks every other non-2xx response.
	ErrServer = errors.New("client: server error")
)

// APIError carries the HTTP status of a non-2xx response. It matches
// ErrAuth or ErrServer under errors.Is depending on the status.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("client: unexpected status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("client: unexpected status %d", e.Status)
}

// AuthFailure reports whether the response rejected the caller's
// credentials.
func (e *APIError) AuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuth:
		return e.AuthFailure()
	case ErrServer:
		return !e.AuthFailure()
	default:
		return false
	}
}
