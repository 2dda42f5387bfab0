// Package errs defines the closed set of error kinds surfaced by tracker
// operations, so callers can branch on the failure class instead of matching
// message text.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure.
type Kind int

const (
	// Database covers open/query/transaction failures against the local database.
	Database Kind = iota + 1
	// UpstreamAPI covers non-2xx responses, unparsable payloads and empty file
	// lists from the CurseForge API.
	UpstreamAPI
	// Validation covers input rejected before any mutation (duplicate ids,
	// duplicate names, malformed stored template JSON).
	Validation
	// Delivery covers non-2xx responses from a Discord webhook.
	Delivery
)

func (k Kind) String() string {
	switch k {
	case Database:
		return "database"
	case UpstreamAPI:
		return "upstream api"
	case Validation:
		return "validation"
	case Delivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a fixed message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
