package trackapi

import (
	"fmt"
)

// ErrorKind classifies a failed fetch.
type ErrorKind int

const (
	// KindTransport covers unreachable hosts, aborted requests and
	// unreadable response bodies.
	KindTransport ErrorKind = iota + 1
	// KindHTTPStatus is any response other than 200 OK.
	KindHTTPStatus
	// KindMalformed is a 200 response whose body is not a list of tracks.
	KindMalformed
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is returned by FetchPage for every failed fetch.
type Error struct {
	Kind       ErrorKind // What went wrong
	Page       int       // Requested page index
	StatusCode int       // HTTP status, set for KindHTTPStatus
	Err        error     // Underlying cause, if any
}

// Error returns the error message.
func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("trackapi: page %d: unexpected status %d", e.Page, e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("trackapi: page %d: %s error: %v", e.Page, e.Kind, e.Err)
		}
		return fmt.Sprintf("trackapi: page %d: %s error", e.Page, e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
//
// A target with a non-zero StatusCode only matches that exact status,
// so errors.Is(err, &Error{Kind: KindHTTPStatus, StatusCode: 404}) can
// single out one response code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// Sentinels for errors.Is checks by kind.
var (
	ErrTransport  = &Error{Kind: KindTransport}
	ErrHTTPStatus = &Error{Kind: KindHTTPStatus}
	ErrMalformed  = &Error{Kind: KindMalformed}
)

// Predefined errors for invalid input.
var (
	// ErrInvalidPage is returned for negative page indexes.
	ErrInvalidPage = fmt.Errorf("trackapi: page index must not be negative")

	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = fmt.Errorf("trackapi: invalid configuration")
)
