// Package errors defines the errors returned while decoding or encoding AMF3 messages.
// Every error is terminal for the call that produced it: once a reference table
// is out of sync with the wire, nothing that follows in the message can be trusted.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTruncated is returned when the input ends in the middle of a value.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidUTF8 is returned when a string literal is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")

	// ErrNestingTooDeep is returned when arrays are nested deeper than the configured bound.
	ErrNestingTooDeep = errors.New("nesting too deep")

	// ErrEmptyString is returned for an empty string literal when empty strings are disallowed.
	ErrEmptyString = errors.New("empty string literal")

	// ErrEmptyKey is returned when encoding an associative pair whose key is empty.
	// The empty string terminates the associative section on the wire.
	ErrEmptyKey = errors.New("empty associative key")

	// ErrLimitExceeded is returned when a length read from the wire exceeds a configured bound.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// UnknownMarkerError is returned when a type marker is not one the codec handles.
// Name is set for markers the format defines but the codec doesn't support.
type UnknownMarkerError struct {
	Marker byte
	Name   string
}

func (e *UnknownMarkerError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unsupported marker 0x%02x (%s)", e.Marker, e.Name)
	}

	return fmt.Sprintf("unknown marker 0x%02x", e.Marker)
}

// IsUnknownMarker reports whether err is, or wraps, an UnknownMarkerError.
func IsUnknownMarker(err error) bool {
	var e *UnknownMarkerError
	return errors.As(err, &e)
}

// InvalidReferenceError is returned when a reference points past the end of its table.
type InvalidReferenceError struct {
	Table string
	Index uint32
	Len   int
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference %d (table has %d entries)", e.Table, e.Index, e.Len)
}

// IsInvalidReference reports whether err is, or wraps, an InvalidReferenceError.
func IsInvalidReference(err error) bool {
	var e *InvalidReferenceError
	return errors.As(err, &e)
}

// TrailingBytesError is returned when decoding stopped before the end of the input.
type TrailingBytesError struct {
	Remaining int
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("%d trailing bytes", e.Remaining)
}

// LimitError wraps ErrLimitExceeded with the bound that was hit.
func LimitError(what string, got, limit uint64) error {
	return errors.Wrapf(ErrLimitExceeded, "%s %d exceeds %d", what, got, limit)
}
