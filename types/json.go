package types

import (
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrCycle is returned when rendering an array that contains itself.
var ErrCycle = errors.New("cyclic array")

// ErrTooManyCopies is returned when arrays referenced from several places
// would be copied more than MaxCopiedValues times while rendering a tree.
var ErrTooManyCopies = errors.New("too many copies of shared arrays")

// MaxCopiedValues bounds the number of values written again because the
// array holding them was already rendered elsewhere in the same tree.
const MaxCopiedValues = 1 << 20

// A CopyBudget tracks how many values of shared arrays a renderer copies.
// Renderers that turn a graph of arrays into a tree charge it every time
// they expand an array a second time.
type CopyBudget struct {
	rendered map[*ArrayValue]struct{}
	copied   int
}

// Charge records that a is about to be expanded.
func (b *CopyBudget) Charge(a *ArrayValue) error {
	if b.rendered == nil {
		b.rendered = make(map[*ArrayValue]struct{})
	}

	if _, ok := b.rendered[a]; !ok {
		b.rendered[a] = struct{}{}
		return nil
	}

	b.copied += len(a.Associative) + len(a.Dense)
	if b.copied > MaxCopiedValues {
		return errors.Wrapf(ErrTooManyCopies, "more than %d values", MaxCopiedValues)
	}
	return nil
}

func marshalJSON(v Value) ([]byte, error) {
	w := jsonWriter{
		seen: make(map[*ArrayValue]struct{}),
	}

	err := w.write(v)
	if err != nil {
		return nil, err
	}

	return w.buf, nil
}

type jsonWriter struct {
	buf    []byte
	seen   map[*ArrayValue]struct{}
	budget CopyBudget
}

func (w *jsonWriter) write(v Value) error {
	a, ok := v.(*ArrayValue)
	if !ok {
		if v == nil {
			w.buf = append(w.buf, "null"...)
			return nil
		}

		data, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		w.buf = append(w.buf, data...)
		return nil
	}

	if a == nil {
		w.buf = append(w.buf, "null"...)
		return nil
	}

	if _, ok := w.seen[a]; ok {
		return errors.WithStack(ErrCycle)
	}
	if err := w.budget.Charge(a); err != nil {
		return err
	}
	w.seen[a] = struct{}{}
	defer delete(w.seen, a)

	if len(a.Associative) == 0 {
		w.buf = append(w.buf, '[')
		for i, v := range a.Dense {
			if i > 0 {
				w.buf = append(w.buf, ',')
			}
			if err := w.write(v); err != nil {
				return err
			}
		}
		w.buf = append(w.buf, ']')
		return nil
	}

	w.buf = append(w.buf, '{')
	for i, p := range a.Associative {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		w.buf = appendJSONString(w.buf, p.Key)
		w.buf = append(w.buf, ':')
		if err := w.write(p.Value); err != nil {
			return err
		}
	}
	for i, v := range a.Dense {
		w.buf = append(w.buf, ',', '"')
		w.buf = strconv.AppendInt(w.buf, int64(i), 10)
		w.buf = append(w.buf, '"', ':')
		if err := w.write(v); err != nil {
			return err
		}
	}
	w.buf = append(w.buf, '}')
	return nil
}

func appendJSONString(dst []byte, s string) []byte {
	// marshaling a string cannot fail
	data, _ := json.Marshal(s)
	return append(dst, data...)
}
