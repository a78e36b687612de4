package amf3

import (
	"github.com/chaisql/amf3/internal/encoding"
	errs "github.com/chaisql/amf3/internal/errors"
	"github.com/chaisql/amf3/internal/reftable"
	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
)

// An Encoder encodes values into AMF3 messages. It holds no state between calls
// and can be used concurrently.
type Encoder struct {
	opts Options
}

// NewEncoder returns an encoder configured by opts. A nil opts uses the defaults.
func NewEncoder(opts *Options) *Encoder {
	return &Encoder{opts: opts.withDefaults()}
}

var defaultEncoder = NewEncoder(nil)

// EncodeMessage encodes values into a single message using the default options.
func EncodeMessage(values ...types.Value) ([]byte, error) {
	return defaultEncoder.AppendMessage(nil, values...)
}

// Encode encodes a message made of one value using the default options.
func Encode(v types.Value) ([]byte, error) {
	return defaultEncoder.AppendMessage(nil, v)
}

// EncodeMessage encodes values into a single message.
func (e *Encoder) EncodeMessage(values ...types.Value) ([]byte, error) {
	return e.AppendMessage(nil, values...)
}

// AppendMessage encodes values and appends them to dst.
// References are shared by all the values of one call. A nil value is encoded as null.
func (e *Encoder) AppendMessage(dst []byte, values ...types.Value) ([]byte, error) {
	s := encodeState{
		buf:            dst,
		opts:           &e.opts,
		literalStrings: e.opts.KeepReferences || holdsStringReference(values),
	}

	for i, v := range values {
		err := s.encodeValue(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding value %d", i)
		}
	}

	return s.buf, nil
}

type encodeState struct {
	buf   []byte
	depth int
	opts  *Options

	// string values are always written as literals, so that the string table
	// matches the indices of the reference nodes of the tree. Keys are still
	// written as references when their content is known.
	literalStrings bool

	strings   reftable.Table[string]
	complexes reftable.Table[types.Value]
}

func (s *encodeState) encodeValue(v types.Value) error {
	if v == nil {
		s.buf = append(s.buf, encoding.NullMarker)
		return nil
	}

	switch t := v.(type) {
	case types.UndefinedValue:
		s.buf = append(s.buf, encoding.UndefinedMarker)
	case types.NullValue:
		s.buf = append(s.buf, encoding.NullMarker)
	case types.BooleanValue:
		if t {
			s.buf = append(s.buf, encoding.TrueMarker)
		} else {
			s.buf = append(s.buf, encoding.FalseMarker)
		}
	case types.IntegerValue:
		if !t.InRange() {
			s.encodeDouble(float64(t))
			return nil
		}
		s.buf = append(s.buf, encoding.IntegerMarker)
		s.buf = encoding.EncodeInt29(s.buf, int32(t))
	case types.DoubleValue:
		s.encodeDouble(float64(t))
	case types.StringValue:
		s.buf = append(s.buf, encoding.StringMarker)
		return s.encodeString(string(t), !s.literalStrings)
	case *types.DateValue:
		return s.encodeDate(t)
	case *types.ArrayValue:
		return s.encodeArray(t)
	case types.ReferenceValue:
		return s.encodeReference(t)
	default:
		return errors.Errorf("cannot encode value of type %T", v)
	}

	return nil
}

func (s *encodeState) encodeDouble(x float64) {
	s.buf = append(s.buf, encoding.DoubleMarker)
	s.buf = encoding.EncodeFloat64(s.buf, x)
}

// encodeString writes the payload of a string. If reuse is set and the same
// content was already written, a reference is written instead.
// The empty string is always written inline.
func (s *encodeState) encodeString(str string, reuse bool) error {
	if str == "" {
		s.buf = append(s.buf, encoding.EmptyString)
		return nil
	}

	if reuse {
		if i, ok := s.strings.Lookup(str); ok {
			s.buf = encoding.EncodeRef(s.buf, i)
			return nil
		}
	}

	if uint64(len(str)) > uint64(s.opts.MaxStringLength) {
		return errs.LimitError("string length", uint64(len(str)), uint64(s.opts.MaxStringLength))
	}

	s.strings.Push(str)
	s.buf = encoding.EncodeStringLiteral(s.buf, str)
	return nil
}

func (s *encodeState) encodeDate(d *types.DateValue) error {
	if d == nil {
		s.buf = append(s.buf, encoding.NullMarker)
		return nil
	}

	s.buf = append(s.buf, encoding.DateMarker)
	if i, ok := s.complexes.Lookup(d); ok {
		s.buf = encoding.EncodeRef(s.buf, i)
		return nil
	}

	s.complexes.Push(d)
	s.buf = encoding.EncodeInline(s.buf, 0)
	s.buf = encoding.EncodeFloat64(s.buf, d.Millis)
	return nil
}

func (s *encodeState) encodeArray(a *types.ArrayValue) error {
	if a == nil {
		s.buf = append(s.buf, encoding.NullMarker)
		return nil
	}

	s.buf = append(s.buf, encoding.ArrayMarker)
	if i, ok := s.complexes.Lookup(a); ok {
		s.buf = encoding.EncodeRef(s.buf, i)
		return nil
	}

	if uint64(len(a.Dense)) > uint64(s.opts.MaxDenseCount) {
		return errs.LimitError("dense count", uint64(len(a.Dense)), uint64(s.opts.MaxDenseCount))
	}

	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.opts.MaxDepth {
		return errors.Wrapf(errs.ErrNestingTooDeep, "more than %d nested arrays", s.opts.MaxDepth)
	}

	s.complexes.Push(a)
	s.buf = encoding.EncodeInline(s.buf, uint32(len(a.Dense)))

	for _, p := range a.Associative {
		if p.Key == "" {
			return errors.WithStack(errs.ErrEmptyKey)
		}

		if err := s.encodeString(p.Key, true); err != nil {
			return err
		}
		if err := s.encodeValue(p.Value); err != nil {
			return errors.Wrapf(err, "key %q", p.Key)
		}
	}
	s.buf = append(s.buf, encoding.EmptyString)

	for i, v := range a.Dense {
		if err := s.encodeValue(v); err != nil {
			return errors.Wrapf(err, "index %d", i)
		}
	}

	return nil
}

// holdsStringReference reports whether a string reference node appears
// anywhere in values.
func holdsStringReference(values []types.Value) bool {
	seen := make(map[*types.ArrayValue]struct{})

	var walk func(v types.Value) bool
	walk = func(v types.Value) bool {
		switch t := v.(type) {
		case types.ReferenceValue:
			return t.Kind == types.TypeString
		case *types.ArrayValue:
			if t == nil {
				return false
			}
			if _, ok := seen[t]; ok {
				return false
			}
			seen[t] = struct{}{}

			for _, p := range t.Associative {
				if walk(p.Value) {
					return true
				}
			}
			for _, d := range t.Dense {
				if walk(d) {
					return true
				}
			}
		}
		return false
	}

	for _, v := range values {
		if walk(v) {
			return true
		}
	}
	return false
}

// encodeReference writes a reference node as is, after checking that it
// points to an entry of the right kind already written in this message.
func (s *encodeState) encodeReference(r types.ReferenceValue) error {
	switch r.Kind {
	case types.TypeString:
		if _, ok := s.strings.Get(r.Index); !ok {
			return errors.WithStack(&errs.InvalidReferenceError{Table: "string", Index: r.Index, Len: s.strings.Len()})
		}
		s.buf = append(s.buf, encoding.StringMarker)
	case types.TypeDate, types.TypeArray:
		v, ok := s.complexes.Get(r.Index)
		if !ok {
			return errors.WithStack(&errs.InvalidReferenceError{Table: "complex", Index: r.Index, Len: s.complexes.Len()})
		}
		if v.Type() != r.Kind {
			return errors.Errorf("reference %d points to a %s, not a %s", r.Index, v.Type(), r.Kind)
		}
		if r.Kind == types.TypeDate {
			s.buf = append(s.buf, encoding.DateMarker)
		} else {
			s.buf = append(s.buf, encoding.ArrayMarker)
		}
	default:
		return errors.Errorf("cannot encode a reference to a %s", r.Kind)
	}

	s.buf = encoding.EncodeRef(s.buf, r.Index)
	return nil
}
