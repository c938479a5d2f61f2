package weather

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidLocation is returned before any network call when the
	// requested coordinates or zip code cannot identify a place.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrServiceUnavailable is the generic user-facing failure surfaced by
	// the orchestrator when an upstream call breaks unexpectedly. The
	// underlying cause is logged, never shown.
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

// APIError is an upstream non-2xx response classified into a stable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Retryable reports whether the status is worth retrying.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// TransportError wraps a network-level failure (timeout, refused connection,
// DNS). It is distinct from APIError: the upstream never answered.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an upstream HTTP status to an APIError. A nil return
// means the response is usable.
func classifyStatus(code int) *APIError {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized:
		return &APIError{StatusCode: code, Message: "Invalid API key"}
	case code == http.StatusNotFound:
		return &APIError{StatusCode: code, Message: "Location not found"}
	case code == http.StatusTooManyRequests:
		return &APIError{StatusCode: code, Message: "rate limit exceeded"}
	case code >= 500 && code <= 599:
		return &APIError{StatusCode: code, Message: "service unavailable"}
	default:
		return &APIError{StatusCode: code, Message: fmt.Sprintf("unexpected response %d %s", code, http.StatusText(code))}
	}
}
