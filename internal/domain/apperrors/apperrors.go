package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the service can surface.
// The transport layer maps these to HTTP status codes and a structured
// error body; nothing below the boundary ever panics on them.
var (
	// ErrNotFound means a referenced shipment does not exist.
	ErrNotFound = errors.New("shipment not found")

	// ErrUnsupportedProduce means shipment creation referenced a produce
	// type absent from the catalog.
	ErrUnsupportedProduce = errors.New("produce type not supported in system")

	// ErrUpstreamUnavailable means the temperature collaborator failed or
	// timed out, so freshness cannot be computed for this request.
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")

	// ErrInvalidInput means the request violated a precondition (negative
	// quantity, malformed coordinates) and was rejected at the boundary.
	ErrInvalidInput = errors.New("invalid input")
)

// Kind returns the wire-level error kind for an error, defaulting to
// "internal" for anything outside the taxonomy.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnsupportedProduce):
		return "unsupported_produce"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

// Invalidf wraps ErrInvalidInput with a formatted detail message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
