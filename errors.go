package amf3

import (
	errs "github.com/chaisql/amf3/internal/errors"
)

var (
	// ErrTruncated is returned when the input ends in the middle of a value.
	ErrTruncated = errs.ErrTruncated

	// ErrInvalidUTF8 is returned when a string literal is not valid UTF-8.
	ErrInvalidUTF8 = errs.ErrInvalidUTF8

	// ErrNestingTooDeep is returned when arrays are nested deeper than Options.MaxDepth.
	ErrNestingTooDeep = errs.ErrNestingTooDeep

	// ErrEmptyString is returned when decoding an empty string value with
	// Options.DisallowEmptyStrings set.
	ErrEmptyString = errs.ErrEmptyString

	// ErrEmptyKey is returned when encoding an array with an empty associative key.
	ErrEmptyKey = errs.ErrEmptyKey

	// ErrLimitExceeded is returned when a dense count or a string length read from
	// the wire exceeds the bounds set in Options.
	ErrLimitExceeded = errs.ErrLimitExceeded
)

type (
	// UnknownMarkerError is returned for a marker the codec doesn't handle,
	// including the object, xml and byte array markers of the format.
	UnknownMarkerError = errs.UnknownMarkerError

	// InvalidReferenceError is returned when a reference points past the end of its table.
	InvalidReferenceError = errs.InvalidReferenceError

	// TrailingBytesError is returned by Decode when bytes remain after the value.
	TrailingBytesError = errs.TrailingBytesError
)
