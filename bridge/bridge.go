// Package bridge converts decoded value trees into the values of a host
// runtime and back. The codec never sees runtime values: it only deals with
// types.Value, and a Runtime decides what a value becomes on the other side.
package bridge

import (
	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
)

// ErrCycle is returned when a tree cannot be converted because an array contains itself
// and the target has no way to represent it.
var ErrCycle = types.ErrCycle

// ErrTooManyCopies is returned when arrays referenced from several places
// would have to be copied too many times to build the target document.
var ErrTooManyCopies = types.ErrTooManyCopies

// A Runtime converts values to and from handles of type H.
type Runtime[H any] interface {
	ToRuntime(v types.Value) (H, error)
	FromRuntime(h H) (types.Value, error)
}

// ToRuntime converts every value of a decoded message.
func ToRuntime[H any](r Runtime[H], values []types.Value) ([]H, error) {
	out := make([]H, 0, len(values))
	for i, v := range values {
		h, err := r.ToRuntime(v)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}

		out = append(out, h)
	}

	return out, nil
}

// FromRuntime converts every handle into a value ready to be encoded.
func FromRuntime[H any](r Runtime[H], handles []H) ([]types.Value, error) {
	out := make([]types.Value, 0, len(handles))
	for i, h := range handles {
		v, err := r.FromRuntime(h)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}

		out = append(out, v)
	}

	return out, nil
}
