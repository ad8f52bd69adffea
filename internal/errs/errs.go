// Package errs contains the tagged error type used across layers for stable
// error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Kind discriminates failure classes for programmatic handling.
type Kind int

const (
	// KindTransport is a request that never received an HTTP response
	// (network unreachable, timeout, DNS). Retried before surfacing.
	KindTransport Kind = iota
	// KindAPI is a received non-2xx response. Never retried: the server
	// may already have applied the state change.
	KindAPI
	// KindPersistence is a local durable-storage read/write failure.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// ErrNotAuthenticated indicates an operation that requires a session was
// attempted without one.
var ErrNotAuthenticated = errors.New("not authenticated")

// Error carries a failure class plus a display-ready message. Status is set
// only for KindAPI.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Transport wraps a connectivity failure.
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf("network error: %v", err), Err: err}
}

// API reports a server-rejected request with the extracted message.
func API(status int, message string) *Error {
	return &Error{Kind: KindAPI, Status: status, Message: message}
}

// Persistence wraps a local storage failure during op.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf("%s: %v", op, err), Err: err}
}

// IsKind reports whether err (or anything it wraps) is an Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
